package controller

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/internal/service"
)

type IAnnotationController interface {
	RegisterRoutes(r fiber.Router)
}

type annotationController struct {
	annotationService service.IAnnotationService
	auth              *middleware.Auth
}

func NewAnnotationController(annotationService service.IAnnotationService, auth *middleware.Auth) IAnnotationController {
	return &annotationController{annotationService: annotationService, auth: auth}
}

func (c *annotationController) RegisterRoutes(r fiber.Router) {
	g := r.Group("/annotations", c.auth.RequiresAuth)
	route(g, "/add-annotation", c.Add)
	route(g, "/get-annotations", c.List)
	route(g, "/delete-annotation", c.Delete)
	route(g, "/edit-canonical-question", c.EditCanonicalQuestion)
	route(g, "/add-paraphrase-question", c.AddParaphrase)
	route(g, "/edit-paraphrase-question", c.EditParaphrase)
	route(g, "/delete-paraphrase-question", c.DeleteParaphrase)
	route(g, "/add-answer", c.AddAnswer)
	route(g, "/edit-answer", c.EditAnswer)
	route(g, "/delete-answer", c.DeleteAnswer)
}

func (c *annotationController) Add(ctx *fiber.Ctx) error {
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	answer, err := middleware.RequiredParam(ctx, "answer")
	if err != nil {
		return err
	}
	documentID, err := middleware.RequiredParam(ctx, "documentid")
	if err != nil {
		return err
	}
	startRaw := middleware.OptionalParam(ctx, "startoffset", "")
	endRaw := middleware.OptionalParam(ctx, "endoffset", "")
	if startRaw == "" || endRaw == "" {
		return apierr.User(apierr.AnnotationMissingParamsText)
	}
	startOffset, err := strconv.Atoi(startRaw)
	if err != nil {
		return apierr.ErrInvalidUsage
	}
	endOffset, err := strconv.Atoi(endRaw)
	if err != nil {
		return apierr.ErrInvalidUsage
	}

	var metadata map[string]interface{}
	if raw := middleware.OptionalParam(ctx, "metadata", ""); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			return apierr.ErrInvalidJSON
		}
	}

	annotation, err := c.annotationService.CreateAnnotation(ctx.Context(), middleware.User(ctx),
		question, answer, documentID,
		middleware.OptionalParam(ctx, "page", ""),
		startOffset, endOffset, metadata)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{
		"annotationId": annotation.AnnotationID,
		"answerId":     annotation.Answers[0].AnswerID,
	})
}

func (c *annotationController) List(ctx *fiber.Ctx) error {
	numberOfItems, offset, err := middleware.ListParams(ctx)
	if err != nil {
		return err
	}
	filter := contract.AnnotationFilter{
		AnnotationIDs: middleware.SplitListParam(ctx, "annotationids"),
		DocumentIDs:   middleware.SplitListParam(ctx, "documentids"),
		Pages:         middleware.SplitListParam(ctx, "pages"),
		SearchTerm:    middleware.OptionalParam(ctx, "searchterm", ""),
	}
	annotations, total, err := c.annotationService.List(ctx.Context(), middleware.User(ctx), filter, numberOfItems, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(annotations))
	for _, annotation := range annotations {
		items = append(items, annotationItem(annotation))
	}
	return middleware.JSON(ctx, fiber.Map{"items": items, "totalItems": total})
}

func (c *annotationController) Delete(ctx *fiber.Ctx) error {
	annotationID, err := middleware.RequiredParam(ctx, "annotationid")
	if err != nil {
		return err
	}
	if err := c.annotationService.Delete(ctx.Context(), middleware.User(ctx), annotationID, false); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"annotationId": annotationID})
}

func (c *annotationController) EditCanonicalQuestion(ctx *fiber.Ctx) error {
	annotationID, err := middleware.RequiredParam(ctx, "annotationid")
	if err != nil {
		return err
	}
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	if err := c.annotationService.EditCanonicalQuestion(ctx.Context(), middleware.User(ctx), annotationID, question, false); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"annotationId": annotationID})
}

func (c *annotationController) AddParaphrase(ctx *fiber.Ctx) error {
	annotationID, err := middleware.RequiredParam(ctx, "annotationid")
	if err != nil {
		return err
	}
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	questionID, err := c.annotationService.AddParaphrase(ctx.Context(), middleware.User(ctx), annotationID, question, false)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"questionId": questionID})
}

func (c *annotationController) EditParaphrase(ctx *fiber.Ctx) error {
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

func (c *annotationController) DeleteParaphrase(ctx *fiber.Ctx) error {
	questionID, err := middleware.RequiredParam(ctx, "questionid")
	if err != nil {
		return err
	}
	if err := c.annotationService.DeleteParaphrase(ctx.Context(), middleware.User(ctx), questionID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"questionId": questionID})
}

func (c *annotationController) AddAnswer(ctx *fiber.Ctx) error {
	annotationID, err := middleware.RequiredParam(ctx, "annotationid")
	if err != nil {
		return err
	}
	answer, err := middleware.RequiredParam(ctx, "answer")
	if err != nil {
		return err
	}
	answerID, err := c.annotationService.AddAnswer(ctx.Context(), middleware.User(ctx), annotationID, answer, false)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"answerId": answerID})
}

func (c *annotationController) EditAnswer(ctx *fiber.Ctx) error {
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

func (c *annotationController) DeleteAnswer(ctx *fiber.Ctx) error {
	answerID, err := middleware.RequiredParam(ctx, "answerid")
	if err != nil {
		return err
	}
	if err := c.annotationService.DeleteAnswer(ctx.Context(), middleware.User(ctx), answerID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"answerId": answerID})
}

func annotationItem(annotation *entity.Annotation) fiber.Map {
	item := savedReplyItem(annotation)
	item["documentId"] = annotation.DocumentID
	item["page"] = annotation.Page
	item["metadata"] = annotation.Metadata
	return item
}
