package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/internal/pkg/mailer"
	"qa-assistant-be/internal/pkg/random"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/pkg/responder"
)

const (
	bearerTokenBytes     = 16
	adminTokenBytes      = 24
	forwardTokenBytes    = 24
	forwardTokenLifetime = 48 * time.Hour
)

type IUserService interface {
	Login(ctx context.Context, userID, password string) (*entity.User, *entity.Session, error)
	Logout(ctx context.Context, sessionID string) error

	Profile(user *entity.User) *dto.Profile
	SetThreshold(ctx context.Context, user *entity.User, sourceType, threshold string) error
	SetPlan(ctx context.Context, user *entity.User, plan string) error
	SetTermsAgreed(ctx context.Context, user *entity.User, agreed string) error
	CompleteOnboarding(ctx context.Context, user *entity.User) error
	Stats(ctx context.Context, user *entity.User) (*dto.Stats, error)

	CreateUser(ctx context.Context, userID, password string) (*entity.User, error)
	DeleteUser(ctx context.Context, userID string) error

	RequestForwardEmail(ctx context.Context, user *entity.User, email string) error
	VerifyForwardEmail(ctx context.Context, token string) (*entity.User, error)
}

type userService struct {
	users       contract.UserRepository
	sessions    contract.SessionStore
	documents   contract.DocumentRepository
	annotations contract.AnnotationRepository
	events      contract.EventRepository
	mail        mailer.IMailer
	baseURL     string
	log         logger.ILogger
}

func NewUserService(
	users contract.UserRepository,
	sessions contract.SessionStore,
	documents contract.DocumentRepository,
	annotations contract.AnnotationRepository,
	events contract.EventRepository,
	mail mailer.IMailer,
	baseURL string,
	log logger.ILogger,
) IUserService {
	return &userService{
		users:       users,
		sessions:    sessions,
		documents:   documents,
		annotations: annotations,
		events:      events,
		mail:        mail,
		baseURL:     strings.TrimRight(baseURL, "/"),
		log:         log,
	}
}

func (s *userService) Login(ctx context.Context, userID, password string) (*entity.User, *entity.Session, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, apierr.User(apierr.InvalidCredentialsText)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apierr.User(apierr.InvalidCredentialsText)
	}
	session, err := s.sessions.Create(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

func (s *userService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *userService) Profile(user *entity.User) *dto.Profile {
	return &dto.Profile{
		UserID:               user.UserID,
		Plan:                 string(user.Plan),
		TermsAgreed:          user.TermsAgreed,
		OnboardingCompleted:  user.OnboardingCompleted,
		DocumentThreshold:    user.DocumentThreshold,
		SavedReplyThreshold:  user.SavedReplyThreshold,
		ForwardEmail:         user.ForwardEmail,
		ForwardEmailVerified: user.ForwardEmailVerified,
	}
}

func (s *userService) SetThreshold(ctx context.Context, user *entity.User, sourceType, threshold string) error {
	if !responder.ValidThreshold(threshold) {
		return apierr.User(apierr.InvalidThresholdText)
	}
	switch sourceType {
	case responder.SourceDocument:
		user.DocumentThreshold = threshold
	case responder.SourceSavedReply:
		user.SavedReplyThreshold = threshold
	case "", "all":
		user.DocumentThreshold = threshold
		user.SavedReplyThreshold = threshold
	default:
		return apierr.User(apierr.InvalidSourceTypeText)
	}
	return s.users.Update(ctx, user)
}

func (s *userService) SetPlan(ctx context.Context, user *entity.User, plan string) error {
	if !entity.ValidPlan(plan) {
		return apierr.User(apierr.InvalidPlanText, plan, planList())
	}
	user.Plan = entity.Plan(plan)
	return s.users.Update(ctx, user)
}

func planList() string {
	names := make([]string, len(entity.AvailablePlans))
	for i, plan := range entity.AvailablePlans {
		names[i] = string(plan)
	}
	return strings.Join(names, ", ")
}

func (s *userService) SetTermsAgreed(ctx context.Context, user *entity.User, agreed string) error {
	switch strings.ToLower(agreed) {
	case "true":
		user.TermsAgreed = true
	case "false":
		user.TermsAgreed = false
	default:
		return apierr.User(apierr.InvalidTermsText, agreed)
	}
	return s.users.Update(ctx, user)
}

func (s *userService) CompleteOnboarding(ctx context.Context, user *entity.User) error {
	user.OnboardingCompleted = true
	return s.users.Update(ctx, user)
}

func (s *userService) Stats(ctx context.Context, user *entity.User) (*dto.Stats, error) {
	events, err := s.events.ListAll(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	savedReplies, err := s.annotations.List(ctx, user.Token, contract.AnnotationFilter{SavedReplies: true})
	if err != nil {
		return nil, err
	}
	documents, err := s.documents.List(ctx, user.Token, nil, "")
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(documents))
	for _, document := range documents {
		titles[document.DocumentID] = document.Title
	}

	stats := &dto.Stats{
		TotalSavedReplies: len(savedReplies),
		TotalDocuments:    len(documents),
		TotalQuestions:    len(events),
		Questions:         make([]dto.QuestionStat, 0, len(events)),
	}

	var totalDuration float64
	sourceCounts := map[string]int{}
	for _, event := range events {
		question := dto.QuestionStat{
			Created:  event.CreatedAt.Unix(),
			Duration: event.Duration,
			Question: event.Question,
		}
		if event.Answered && len(event.Answers) > 0 {
			answer := event.Answers[0]
			totalDuration += event.Duration
			question.Answer = answer.AnswerText
			if answer.SourceType == responder.SourceSavedReply {
				stats.Automatic++
				question.Status = "automatic"
				question.MatchedQuestion = answer.MatchedQuestion
			} else {
				stats.Assisted++
				question.Status = "assisted"
				sourceCounts[answer.SourceID]++
			}
		} else {
			stats.Unanswered++
			question.Status = "unanswered"
		}
		stats.Questions = append(stats.Questions, question)
	}

	sourceCounts["saved_reply"] = stats.Automatic
	sourceCounts["unanswered"] = stats.Unanswered
	if stats.TotalQuestions > 0 {
		stats.Sources = sourcePercentages(sourceCounts, titles, stats.TotalQuestions)
		stats.AverageResponseTime = totalDuration / float64(stats.TotalQuestions)
	}

	history, err := s.events.ListCoverage(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	stats.Coverage = make([]dto.CoveragePoint, 0, len(history))
	for _, point := range history {
		stats.Coverage = append(stats.Coverage, dto.CoveragePoint{
			Coverage: point.Coverage,
			Time:     point.CreatedAt.Unix(),
		})
	}
	return stats, nil
}

// sourcePercentages resolves answer sources to display titles and their
// share of all questions, most used first.
func sourcePercentages(counts map[string]int, titles map[string]string, total int) []dto.SourcePercent {
	sources := make([]dto.SourcePercent, 0, len(counts))
	for source, count := range counts {
		title := source
		switch source {
		case "saved_reply":
			title = "Saved replies"
		case "unanswered":
			title = "Unanswered"
		default:
			if documentTitle, ok := titles[source]; ok {
				if documentTitle != "" {
					title = documentTitle
				}
			} else {
				title = "Deleted document"
			}
		}
		sources = append(sources, dto.SourcePercent{
			Source:  source,
			Title:   title,
			Percent: float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		a, b := counts[sources[i].Source], counts[sources[j].Source]
		if a != b {
			return a > b
		}
		return sources[i].Source < sources[j].Source
	})
	return sources
}

func (s *userService) CreateUser(ctx context.Context, userID, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		UserID:              userID,
		PasswordHash:        string(hash),
		Token:               random.URLSafeToken(bearerTokenBytes),
		AdminToken:          random.URLSafeToken(adminTokenBytes),
		Plan:                entity.PlanFree,
		DocumentThreshold:   "medium",
		SavedReplyThreshold: "medium",
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apierr.User(apierr.UserExistsText, userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if err := s.documents.DeleteAllByUser(ctx, user.Token); err != nil {
		return err
	}
	if err := s.annotations.DeleteAllByUser(ctx, user.Token); err != nil {
		return err
	}
	if err := s.events.DeleteAllByUser(ctx, user.UserID); err != nil {
		return err
	}
	return s.users.Delete(ctx, user.UserID)
}

func (s *userService) RequestForwardEmail(ctx context.Context, user *entity.User, email string) error {
	token := &entity.ForwardEmailToken{
		Token:     random.URLSafeToken(forwardTokenBytes),
		UserID:    user.UserID,
		Email:     email,
		ExpiresAt: time.Now().Add(forwardTokenLifetime),
	}
	if err := s.users.CreateForwardEmailToken(ctx, token); err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/api/0.1/email/verify?forwardtoken=%s",
		s.baseURL, url.QueryEscape(token.Token))
	if err := s.mail.SendForwardEmailVerification(email, verifyURL); err != nil {
		s.log.Warn("user", "failed to send verification email", map[string]interface{}{
			"userId": user.UserID,
			"error":  err.Error(),
		})
		return err
	}
	return nil
}

func (s *userService) VerifyForwardEmail(ctx context.Context, token string) (*entity.User, error) {
	record, err := s.users.FindForwardEmailToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if record == nil || record.Expired(time.Now()) {
		return nil, apierr.User(apierr.InvalidForwardTokenText)
	}
	user, err := s.users.FindByUserID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.User(apierr.InvalidForwardTokenText)
	}
	user.ForwardEmail = &record.Email
	user.ForwardEmailVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.DeleteForwardEmailToken(ctx, token); err != nil {
		s.log.Warn("user", "failed to delete used verification token", map[string]interface{}{
			"userId": user.UserID,
			"error":  err.Error(),
		})
	}
	return user, nil
}
