package service

import (
	"context"

	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/pkg/responder"
)

// BotGateway adapts the answer and annotation services to the narrow
// interfaces the chat bot consumes. Bot questions are labeled with their
// own source so the inbox can tell them apart from API calls.
type BotGateway struct {
	answers IAnswerService
	replies IAnnotationService
}

func NewBotGateway(answers IAnswerService, replies IAnnotationService) *BotGateway {
	return &BotGateway{answers: answers, replies: replies}
}

func (g *BotGateway) Answer(ctx context.Context, user *entity.User, question string, numberOfItems int) ([]responder.AnswerRecord, error) {
	return g.answers.Answer(ctx, user, &dto.AnswerQuery{
		Question:       question,
		NumberOfItems:  numberOfItems,
		QuestionSource: "Answerbot",
	})
}

func (g *BotGateway) CreateSavedReply(ctx context.Context, user *entity.User, question, answer string) (string, error) {
	reply, err := g.replies.CreateSavedReply(ctx, user, question, answer)
	if err != nil {
		return "", err
	}
	return reply.AnnotationID, nil
}

func (g *BotGateway) AddParaphrase(ctx context.Context, user *entity.User, replyID, question string) error {
	_, err := g.replies.AddParaphrase(ctx, user, replyID, question, true)
	return err
}
