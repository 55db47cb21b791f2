package controller

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/constant"
	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/service"
)

type IAnswerController interface {
	RegisterRoutes(r fiber.Router)
	Answer(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type answerController struct {
	answerService service.IAnswerService
	auth          *middleware.Auth
	hostname      string
}

func NewAnswerController(answerService service.IAnswerService, auth *middleware.Auth, hostname string) IAnswerController {
	return &answerController{answerService: answerService, auth: auth, hostname: hostname}
}

func (c *answerController) RegisterRoutes(r fiber.Router) {
	route(r, "/answer", c.auth.RequiresToken, c.Answer)
	route(r, "/status", c.Status)
}

func (c *answerController) Answer(ctx *fiber.Ctx) error {
	question, err := middleware.RequiredParam(ctx, "question")
	if err != nil {
		return err
	}
	numberOfItems, err := middleware.IntParam(ctx, "numberofitems", 1)
	if err != nil {
		return err
	}
	offset, err := middleware.IntParam(ctx, "offset", 0)
	if err != nil {
		return err
	}

	query := &dto.AnswerQuery{
		Question:        question,
		SourceType:      middleware.OptionalParam(ctx, "sourcetype", "all"),
		DocumentIDs:     middleware.SplitListParam(ctx, "documentids"),
		InlineText:      middleware.OptionalParam(ctx, "text", ""),
		SpeedOrAccuracy: middleware.OptionalParam(ctx, "speedoraccuracy", ""),
		Threshold:       middleware.OptionalParam(ctx, "threshold", ""),
		NumberOfItems:   numberOfItems,
		Offset:          offset,
	}

	answers, err := c.answerService.Answer(ctx.Context(), middleware.UserFromToken(ctx), query)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"items": answers, "totalItems": len(answers)})
}

func (c *answerController) Status(ctx *fiber.Ctx) error {
	hostname := c.hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	return middleware.JSON(ctx, fiber.Map{
		"name":     constant.Name,
		"version":  constant.Version,
		"api":      constant.APIVersion,
		"hostname": hostname,
		"client":   ctx.IP(),
	})
}
