package controller

import (
	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/bot"
	"qa-assistant-be/internal/middleware"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Message(ctx *fiber.Ctx) error
}

type chatController struct {
	dispatcher *bot.Dispatcher
	auth       *middleware.Auth
}

func NewChatController(dispatcher *bot.Dispatcher, auth *middleware.Auth) IChatController {
	return &chatController{dispatcher: dispatcher, auth: auth}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	route(r, "/chat/message", c.auth.RequiresToken, c.Message)
}

func (c *chatController) Message(ctx *fiber.Ctx) error {
	conversationID, err := middleware.RequiredParam(ctx, "conversationid")
	if err != nil {
		return err
	}
	text, err := middleware.RequiredParam(ctx, "message")
	if err != nil {
		return err
	}

	reply, err := c.dispatcher.Process(ctx.Context(), middleware.UserFromToken(ctx), conversationID, text)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{
		"conversationId": conversationID,
		"text":           reply,
	})
}
