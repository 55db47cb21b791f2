package controller

import (
	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/service"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
}

type paymentController struct {
	paymentService service.IPaymentService
	auth           *middleware.Auth
}

func NewPaymentController(paymentService service.IPaymentService, auth *middleware.Auth) IPaymentController {
	return &paymentController{paymentService: paymentService, auth: auth}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	route(r, "/user/upgrade-plan", c.auth.RequiresAuth, c.UpgradePlan)
	// gateway webhook, authenticated by re-checking the order server side
	route(r, "/payment/notification", c.Notification)
}

func (c *paymentController) UpgradePlan(ctx *fiber.Ctx) error {
	plan, err := middleware.RequiredParam(ctx, "plan")
	if err != nil {
		return err
	}
	checkout, err := c.paymentService.CreatePlanCheckout(ctx.Context(), middleware.User(ctx), plan)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, checkout)
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	orderID := middleware.OptionalParam(ctx, "order_id", "")
	if err := c.paymentService.HandleNotification(ctx.Context(), orderID); err != nil {
		return err
	}
	return middleware.JSON(ctx, "ok")
}
