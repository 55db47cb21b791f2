package server

import (
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"qa-assistant-be/internal/bootstrap"
	"qa-assistant-be/internal/config"
	"qa-assistant-be/internal/constant"
	"qa-assistant-be/internal/middleware"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Duration(cfg.App.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.App.RequestTimeoutSec) * time.Second,
		ErrorHandler: middleware.ErrorHandler(container.Logger),
	})

	app.Use(recover.New())
	app.Use(middleware.CORS())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Params())
	app.Use(container.Auth.Middleware())
	app.Use(middleware.SessionCookies(container.Sessions))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group(constant.URLBase)

	c.AnswerController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)

	c.DocumentController.RegisterRoutes(api)
	c.SavedReplyController.RegisterRoutes(api)
	c.AnnotationController.RegisterRoutes(api)

	c.InboxController.RegisterRoutes(api)
	c.UserController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)
}
