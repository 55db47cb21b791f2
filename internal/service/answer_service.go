package service

import (
	"context"
	"sort"
	"time"

	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/pkg/responder"
)

var validSourceTypes = map[string]struct{}{
	responder.SourceDocument:   {},
	responder.SourceSavedReply: {},
	"all":                      {},
}

var validSpeedOrAccuracy = map[string]struct{}{
	"speed":    {},
	"accuracy": {},
	"balanced": {},
	"total":    {},
}

type IAnswerService interface {
	// Answer validates the query, asks the engine and returns the
	// requested window of candidate answers, best first.
	Answer(ctx context.Context, user *entity.User, query *dto.AnswerQuery) ([]responder.AnswerRecord, error)
}

type answerService struct {
	engine        responder.Engine
	analytics     IAnalyticsPublisher
	maxAnswers    int
	maxInlineText int
}

func NewAnswerService(engine responder.Engine, analytics IAnalyticsPublisher, maxAnswers, maxInlineText int) IAnswerService {
	return &answerService{
		engine:        engine,
		analytics:     analytics,
		maxAnswers:    maxAnswers,
		maxInlineText: maxInlineText,
	}
}

func (s *answerService) Answer(ctx context.Context, user *entity.User, query *dto.AnswerQuery) ([]responder.AnswerRecord, error) {
	started := time.Now()

	if query.Question == "" {
		return nil, apierr.MissingParameter("question")
	}
	sourceType := query.SourceType
	if sourceType == "" {
		sourceType = "all"
	}
	if _, ok := validSourceTypes[sourceType]; !ok {
		return nil, apierr.User(apierr.InvalidSourceTypeText)
	}
	speedOrAccuracy := query.SpeedOrAccuracy
	if speedOrAccuracy == "" {
		speedOrAccuracy = "balanced"
	}
	if _, ok := validSpeedOrAccuracy[speedOrAccuracy]; !ok {
		return nil, apierr.User(apierr.InvalidSpeedOrAccuracyText, speedOrAccuracy)
	}

	if len(query.InlineText) > s.maxInlineText {
		return nil, apierr.User(apierr.MaxSizeInlineTextText, s.maxInlineText, len(query.InlineText))
	}

	documentThreshold := user.DocumentThreshold
	savedReplyThreshold := user.SavedReplyThreshold
	if query.Threshold != "" {
		if !responder.ValidThreshold(query.Threshold) {
			return nil, apierr.User(apierr.InvalidThresholdText)
		}
		documentThreshold = query.Threshold
		savedReplyThreshold = query.Threshold
	}

	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	numberOfItems := query.NumberOfItems
	if numberOfItems <= 0 {
		numberOfItems = 1
	}
	if remaining := s.maxAnswers - offset; numberOfItems > remaining {
		numberOfItems = remaining
	}
	if numberOfItems <= 0 {
		return []responder.AnswerRecord{}, nil
	}

	var results []responder.AnswerRecord

	if sourceType != responder.SourceDocument {
		answers, err := s.engine.AnswersFromSimilarQuestions(ctx, user.Token, query.Question,
			sourceType, query.DocumentIDs, thresholdValue(responder.SourceSavedReply, savedReplyThreshold))
		if err != nil {
			return nil, err
		}
		results = answers
	}

	if sourceType != responder.SourceSavedReply && len(results) < offset+numberOfItems {
		answers, err := s.engine.AnswersFromDocuments(ctx, user.Token, query.Question,
			query.DocumentIDs, 0, offset+numberOfItems-len(results), query.InlineText,
			thresholdValue(responder.SourceDocument, documentThreshold))
		if err != nil {
			return nil, err
		}
		results = append(results, answers...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	window := pageWindow(results, offset, numberOfItems)

	s.publishAnalytics(user, query, window, time.Since(started).Seconds())
	return window, nil
}

func (s *answerService) publishAnalytics(user *entity.User, query *dto.AnswerQuery, answers []responder.AnswerRecord, duration float64) {
	if s.analytics == nil {
		return
	}
	automatic := len(answers) > 0 &&
		(answers[0].SourceType == responder.SourceSavedReply || answers[0].SourceType == responder.SourceAnnotation)
	source := query.QuestionSource
	if source == "" {
		source = "API"
	}
	s.analytics.PublishQuestionAnswered(&dto.QuestionAnswered{
		UserID:         user.UserID,
		Question:       query.Question,
		QuestionSource: source,
		Answers:        answers,
		Answered:       len(answers) > 0,
		Automatic:      automatic,
		Duration:       duration,
	})
}

func thresholdValue(sourceType, name string) float64 {
	if value, ok := responder.ThresholdMap[sourceType][name]; ok {
		return value
	}
	return responder.ThresholdMap[sourceType]["medium"]
}

func pageWindow(records []responder.AnswerRecord, offset, numberOfItems int) []responder.AnswerRecord {
	if offset >= len(records) {
		return []responder.AnswerRecord{}
	}
	end := offset + numberOfItems
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
