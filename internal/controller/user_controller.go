package controller

import (
	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
}

type userController struct {
	userService service.IUserService
	auth        *middleware.Auth
}

func NewUserController(userService service.IUserService, auth *middleware.Auth) IUserController {
	return &userController{userService: userService, auth: auth}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	route(r, "/user/login", c.Login)
	route(r, "/user/logout", c.auth.RequiresAuth, c.Logout)
	route(r, "/user/get-user-token", c.auth.RequiresAuth, c.GetUserToken)
	route(r, "/user/get-admin-token", c.auth.RequiresAuth, c.GetAdminToken)
	route(r, "/user/get-profile", c.auth.RequiresAuth, c.GetProfile)
	route(r, "/user/stats", c.auth.RequiresAuth, c.GetStats)
	route(r, "/user/get-default-threshold", c.auth.RequiresAuth, c.GetThreshold)
	route(r, "/user/set-default-threshold", c.auth.RequiresAuth, c.SetThreshold)
	route(r, "/user/set-terms-agreed", c.auth.RequiresAuth, c.SetTermsAgreed)
	route(r, "/user/set-onboarding-completed", c.auth.RequiresAuth, c.CompleteOnboarding)
	route(r, "/user/set-forward-email", c.auth.RequiresAuth, c.SetForwardEmail)
	route(r, "/user/set-plan", c.auth.RequiresAuth, c.SetPlan)

	route(r, "/user/create-user", c.auth.RequiresAdmin, c.CreateUser)
	route(r, "/user/delete-user", c.auth.RequiresAdmin, c.DeleteUser)

	// the verification link from the forwarding mail lands here
	route(r, "/email/verify", c.VerifyForwardEmail)
}

func (c *userController) Login(ctx *fiber.Ctx) error {
	login, err := middleware.RequiredParam(ctx, "login")
	if err != nil {
		return err
	}
	password, err := middleware.RequiredParam(ctx, "password")
	if err != nil {
		return err
	}
	user, session, err := c.userService.Login(ctx.Context(), login, password)
	if err != nil {
		return err
	}
	middleware.SetSessionID(ctx, session.SessionID)
	return middleware.JSON(ctx, fiber.Map{
		"message":    apierr.ValidCredentialsText,
		"sessionId":  session.SessionID,
		"adminToken": user.AdminToken,
	})
}

func (c *userController) Logout(ctx *fiber.Ctx) error {
	if err := c.userService.Logout(ctx.Context(), middleware.SessionID(ctx)); err != nil {
		return err
	}
	middleware.ClearSessionID(ctx)
	return middleware.JSON(ctx, apierr.LoggedOutText)
}

func (c *userController) GetUserToken(ctx *fiber.Ctx) error {
	return middleware.JSON(ctx, fiber.Map{"userToken": middleware.User(ctx).Token})
}

func (c *userController) GetAdminToken(ctx *fiber.Ctx) error {
	return middleware.JSON(ctx, fiber.Map{"adminToken": middleware.User(ctx).AdminToken})
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	return middleware.JSON(ctx, c.userService.Profile(middleware.User(ctx)))
}

func (c *userController) GetStats(ctx *fiber.Ctx) error {
	stats, err := c.userService.Stats(ctx.Context(), middleware.User(ctx))
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, stats)
}

func (c *userController) GetThreshold(ctx *fiber.Ctx) error {
	return middleware.JSON(ctx, fiber.Map{"threshold": middleware.User(ctx).DocumentThreshold})
}

func (c *userController) SetThreshold(ctx *fiber.Ctx) error {
	threshold, err := middleware.RequiredParam(ctx, "threshold")
	if err != nil {
		return err
	}
	sourceType := middleware.OptionalParam(ctx, "sourcetype", "all")
	if err := c.userService.SetThreshold(ctx.Context(), middleware.User(ctx), sourceType, threshold); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"threshold": threshold})
}

func (c *userController) SetTermsAgreed(ctx *fiber.Ctx) error {
	agreed, err := middleware.RequiredParam(ctx, "termsagreed")
	if err != nil {
		return err
	}
	if err := c.userService.SetTermsAgreed(ctx.Context(), middleware.User(ctx), agreed); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"termsAgreed": middleware.User(ctx).TermsAgreed})
}

func (c *userController) CompleteOnboarding(ctx *fiber.Ctx) error {
	if err := c.userService.CompleteOnboarding(ctx.Context(), middleware.User(ctx)); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"onboardingCompleted": true})
}

func (c *userController) SetForwardEmail(ctx *fiber.Ctx) error {
	email, err := middleware.RequiredParam(ctx, "email")
	if err != nil {
		return err
	}
	if err := c.userService.RequestForwardEmail(ctx.Context(), middleware.User(ctx), email); err != nil {
		return err
	}
	return middleware.JSON(ctx, "A verification mail is on its way to "+email+".")
}

func (c *userController) VerifyForwardEmail(ctx *fiber.Ctx) error {
	token, err := middleware.RequiredParam(ctx, "forwardtoken")
	if err != nil {
		return err
	}
	user, err := c.userService.VerifyForwardEmail(ctx.Context(), token)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{
		"forwardEmail":         user.ForwardEmail,
		"forwardEmailVerified": user.ForwardEmailVerified,
	})
}

func (c *userController) SetPlan(ctx *fiber.Ctx) error {
	plan, err := middleware.RequiredParam(ctx, "plan")
	if err != nil {
		return err
	}
	if err := c.userService.SetPlan(ctx.Context(), middleware.User(ctx), plan); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"plan": plan})
}

func (c *userController) CreateUser(ctx *fiber.Ctx) error {
	userID, err := middleware.RequiredParam(ctx, "userid")
	if err != nil {
		return err
	}
	password, err := middleware.RequiredParam(ctx, "password")
	if err != nil {
		return err
	}
	user, err := c.userService.CreateUser(ctx.Context(), userID, password)
	if err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{
		"userId":     user.UserID,
		"token":      user.Token,
		"adminToken": user.AdminToken,
	})
}

func (c *userController) DeleteUser(ctx *fiber.Ctx) error {
	userID, err := middleware.RequiredParam(ctx, "userid")
	if err != nil {
		return err
	}
	if err := c.userService.DeleteUser(ctx.Context(), userID); err != nil {
		return err
	}
	return middleware.JSON(ctx, fiber.Map{"userId": userID})
}
