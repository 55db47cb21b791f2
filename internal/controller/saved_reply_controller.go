package controller

import (
	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/internal/service"
)

type ISavedReplyController interface {
	RegisterRoutes(r fiber.Router)
}

type savedReplyController struct {
	annotationService service.IAnnotationService
	auth              *middleware.Auth
}

func NewSavedReplyController(annotationService service.IAnnotationService, auth *middleware.Auth) ISavedReplyController {
	return &savedReplyController{annotationService: annotationService, auth: auth}
}

func (c *savedReplyController) RegisterRoutes(r fiber.Router) {
	g := r.Group("/saved-replies", c.auth.RequiresAuth)
	route(g, "/add-saved-reply", c.Add)
	route(g, "/get-saved-replies", c.List)
	route(g, "/delete-saved-reply", c.Delete)
	route(g, "/edit-canonical-question", c.EditCanonicalQuestion)
	route(g, "/add-paraphrase-question", c.AddParaphrase)
	route(g, "/edit-paraphrase-question", c.EditParaphrase)
	route(g, "/delete-paraphrase-question", c.DeleteParaphrase)
	route(g, "/add-answer", c.AddAnswer)
	route(g, "/edit-answer", c.EditAnswer)
	route(g, "/delete-answer", c.DeleteAnswer)
}

func (c *savedReplyController) Add(ctx *fiber.Ctx) error {
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	answer, err := middleware.RequiredParam(ctx, "answer")
	if err != nil {
		return err
	}
	reply, err := c.annotationService.CreateSavedReply(ctx.Context(), middleware.User(ctx), question, answer)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{
		"replyId":  reply.AnnotationID,
		"answerId": reply.Answers[0].AnswerID,
	})
}

func (c *savedReplyController) List(ctx *fiber.Ctx) error {
	numberOfItems, offset, err := middleware.ListParams(ctx)
	if err != nil {
		return err
	}
	filter := contract.AnnotationFilter{
		AnnotationIDs: middleware.SplitListParam(ctx, "savedreplyids"),
		SearchTerm:    middleware.OptionalParam(ctx, "searchterm", ""),
		SavedReplies:  true,
	}
	replies, total, err := c.annotationService.List(ctx.Context(), middleware.User(ctx), filter, numberOfItems, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(replies))
	for _, reply := range replies {
		items = append(items, savedReplyItem(reply))
	}
	return middleware.JSON(ctx, fiber.Map{"items": items, "totalItems": total})
}

func (c *savedReplyController) Delete(ctx *fiber.Ctx) error {
	replyID, err := middleware.RequiredParam(ctx, "replyid")
	if err != nil {
		return err
	}
	if err := c.annotationService.Delete(ctx.Context(), middleware.User(ctx), replyID, true); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"replyId": replyID})
}

func (c *savedReplyController) EditCanonicalQuestion(ctx *fiber.Ctx) error {
	replyID, err := middleware.RequiredParam(ctx, "replyid")
	if err != nil {
		return err
	}
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	if err := c.annotationService.EditCanonicalQuestion(ctx.Context(), middleware.User(ctx), replyID, question, true); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"replyId": replyID})
}

func (c *savedReplyController) AddParaphrase(ctx *fiber.Ctx) error {
	replyID, err := middleware.RequiredParam(ctx, "replyid")
	if err != nil {
		return err
	}
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	questionID, err := c.annotationService.AddParaphrase(ctx.Context(), middleware.User(ctx), replyID, question, true)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"questionId": questionID})
}

func (c *savedReplyController) EditParaphrase(ctx *fiber.Ctx) error {
	questionID, err := middleware.RequiredParam(ctx, "questionid")
	if err != nil {
		return err
	}
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	if err := c.annotationService.EditParaphrase(ctx.Context(), middleware.User(ctx), questionID, question); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"questionId": questionID})
}

func (c *savedReplyController) DeleteParaphrase(ctx *fiber.Ctx) error {
	questionID, err := middleware.RequiredParam(ctx, "questionid")
	if err != nil {
		return err
	}
	if err := c.annotationService.DeleteParaphrase(ctx.Context(), middleware.User(ctx), questionID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"questionId": questionID})
}

func (c *savedReplyController) AddAnswer(ctx *fiber.Ctx) error {
	replyID, err := middleware.RequiredParam(ctx, "replyid")
	if err != nil {
		return err
	}
	answer, err := middleware.RequiredParam(ctx, "answer")
	if err != nil {
		return err
	}
	answerID, err := c.annotationService.AddAnswer(ctx.Context(), middleware.User(ctx), replyID, answer, true)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"answerId": answerID})
}

func (c *savedReplyController) EditAnswer(ctx *fiber.Ctx) error {
	answerID, err := middleware.RequiredParam(ctx, "answerid")
	if err != nil {
		return err
	}
	answer, err := middleware.RequiredParam(ctx, "answer")
	if err != nil {
		return err
	}
	if err := c.annotationService.EditAnswer(ctx.Context(), middleware.User(ctx), answerID, answer); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"answerId": answerID})
}

func (c *savedReplyController) DeleteAnswer(ctx *fiber.Ctx) error {
	answerID, err := middleware.RequiredParam(ctx, "answerid")
	if err != nil {
		return err
	}
	if err := c.annotationService.DeleteAnswer(ctx.Context(), middleware.User(ctx), answerID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"answerId": answerID})
}

func savedReplyItem(reply *entity.Annotation) fiber.Map {
	paraphrases := make([]fiber.Map, 0, len(reply.Paraphrases))
	for _, paraphrase := range reply.Paraphrases {
		paraphrases = append(paraphrases, fiber.Map{
			"id":       paraphrase.QuestionID,
			"question": paraphrase.Question,
		})
	}
	answers := make([]fiber.Map, 0, len(reply.Answers))
	for _, answer := range reply.Answers {
		answers = append(answers, fiber.Map{
			"id":     answer.AnswerID,
			"answer": answer.Answer,
		})
	}
	return fiber.Map{
		"id":                  reply.AnnotationID,
		"canonicalQuestion":   reply.Question,
		"paraphraseQuestions": paraphrases,
		"answers":             answers,
		"created":             reply.CreatedAt.Unix(),
		"modified":            reply.UpdatedAt.Unix(),
	}
}
