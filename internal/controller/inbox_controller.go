package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/internal/service"
	"qa-assistant-be/internal/websocket"
)

type IInboxController interface {
	RegisterRoutes(r fiber.Router)
}

type inboxController struct {
	inboxService service.IInboxService
	hub          *websocket.Hub
	auth         *middleware.Auth
}

func NewInboxController(inboxService service.IInboxService, hub *websocket.Hub, auth *middleware.Auth) IInboxController {
	return &inboxController{inboxService: inboxService, hub: hub, auth: auth}
}

func (c *inboxController) RegisterRoutes(r fiber.Router) {
	route(r, "/inbox/get-inbox", c.auth.RequiresAuth, c.List)
	route(r, "/inbox/mark-inbox-read", c.auth.RequiresAuth, c.MarkRead)
	route(r, "/inbox/mark-inbox-unread", c.auth.RequiresAuth, c.MarkUnread)
	route(r, "/inbox/archive-inbox", c.auth.RequiresAuth, c.Archive)

	r.Get("/inbox/ws", c.auth.RequiresAuth, c.upgrade, fiberws.New(c.serveWs))
}

func (c *inboxController) List(ctx *fiber.Ctx) error {
	numberOfItems, offset, err := middleware.ListParams(ctx)
	if err != nil {
		return err
	}
	filter := contract.EventFilter{
		Read:          contract.TriState(strings.ToLower(middleware.OptionalParam(ctx, "read", "both"))),
		Answered:      contract.TriState(strings.ToLower(middleware.OptionalParam(ctx, "answered", "both"))),
		SearchTerm:    middleware.OptionalParam(ctx, "searchterm", ""),
		NumberOfItems: numberOfItems,
		Offset:        offset,
	}
	events, total, err := c.inboxService.List(ctx.Context(), middleware.User(ctx), filter)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(events))
	for _, event := range events {
		items = append(items, inboxItem(event))
	}
	return middleware.JSON(ctx, fiber.Map{"items": items, "totalItems": total})
}

func (c *inboxController) MarkRead(ctx *fiber.Ctx) error {
	return c.markRead(ctx, true)
}

func (c *inboxController) MarkUnread(ctx *fiber.Ctx) error {
	return c.markRead(ctx, false)
}

func (c *inboxController) markRead(ctx *fiber.Ctx, read bool) error {
	inboxID, err := middleware.RequiredParam(ctx, "inboxid")
	if err != nil {
		return err
	}
	if err := c.inboxService.MarkRead(ctx.Context(), middleware.User(ctx), inboxID, read); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"inboxId": inboxID})
}

func (c *inboxController) Archive(ctx *fiber.Ctx) error {
	inboxID, err := middleware.RequiredParam(ctx, "inboxid")
	if err != nil {
		return err
	}
	if err := c.inboxService.Archive(ctx.Context(), middleware.User(ctx), inboxID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"inboxId": inboxID})
}

// upgrade stashes the user id before the connection leaves fiber's handler
// chain; the websocket callback cannot reach the auth locals anymore.
func (c *inboxController) upgrade(ctx *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	ctx.Locals("ws_user_id", middleware.User(ctx).UserID)
	return ctx.Next()
}

func (c *inboxController) serveWs(conn *fiberws.Conn) {
	userID, _ := conn.Locals("ws_user_id").(string)
	if userID == "" {
		conn.Close()
		return
	}
	websocket.ServeWs(c.hub, conn, userID)
}

func inboxItem(event *entity.Event) fiber.Map {
	return fiber.Map{
		"id":             event.ID,
		"question":       event.Question,
		"questionSource": event.QuestionSource,
		"answers":        event.Answers,
		"answered":       event.Answered,
		"automatic":      event.Automatic,
		"read":           event.Read,
		"duration":       event.Duration,
		"created":        event.CreatedAt.Unix(),
		"modified":       event.ModifiedAt.Unix(),
	}
}
