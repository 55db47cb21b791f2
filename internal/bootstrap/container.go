package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"qa-assistant-be/internal/bot"
	"qa-assistant-be/internal/config"
	"qa-assistant-be/internal/controller"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/internal/pkg/mailer"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/internal/repository/implementation"
	"qa-assistant-be/internal/repository/memory"
	redisstore "qa-assistant-be/internal/repository/redis"
	"qa-assistant-be/internal/service"
	"qa-assistant-be/internal/websocket"
	pkgNats "qa-assistant-be/pkg/nats"
	"qa-assistant-be/pkg/responder"
)

type Container struct {
	Logger logger.ILogger
	Auth   *middleware.Auth

	Sessions contract.SessionStore

	AnswerController     controller.IAnswerController
	ChatController       controller.IChatController
	DocumentController   controller.IDocumentController
	SavedReplyController controller.ISavedReplyController
	AnnotationController controller.IAnnotationController
	InboxController      controller.IInboxController
	UserController       controller.IUserController
	PaymentController    controller.IPaymentController

	AnalyticsConsumer   service.IAnalyticsConsumer
	NotificationService service.INotificationService
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Repositories
	userRepo := implementation.NewUserRepository(db)
	eventRepo := implementation.NewEventRepository(db)
	documentRepo := implementation.NewDocumentRepository(db)
	annotationRepo := implementation.NewAnnotationRepository(db)
	paymentRepo := implementation.NewPaymentRepository(db)

	// Redis; sessions fall back to the in-process store when it is down
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	var sessions contract.SessionStore
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Sessions are in-memory", err)
		sessions = memory.NewSessionStore()
	} else {
		sessions = redisstore.NewSessionStore(rdb)
	}

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
		natsSub = nil
	}

	// In-process analytics bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))

	// Mail
	var mail mailer.IMailer = mailer.Noop{}
	if cfg.SMTP.Host != "" {
		mail = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password, cfg.SMTP.Email)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Answering engine backed by the content stores
	engine := responder.NewLexical(
		service.NewAnnotationPairSource(annotationRepo),
		service.NewDocumentTextSource(documentRepo),
	)

	// Services
	analyticsPublisher := service.NewAnalyticsPublisher(pubSub, sysLogger)
	var bus service.BusPublisher
	if natsPub != nil {
		bus = natsPub
	}
	analyticsConsumer := service.NewAnalyticsConsumer(pubSub, eventRepo, bus, sysLogger)

	answerService := service.NewAnswerService(engine, analyticsPublisher, cfg.Answer.MaxAnswers, cfg.Answer.MaxInlineText)
	annotationService := service.NewAnnotationService(annotationRepo)
	documentService := service.NewDocumentService(documentRepo, cfg.Answer.MaxInlineText)
	inboxService := service.NewInboxService(eventRepo)
	userService := service.NewUserService(userRepo, sessions, documentRepo, annotationRepo, eventRepo, mail, cfg.App.BaseURL, sysLogger)
	paymentService := service.NewPaymentService(cfg.Payment.MidtransServerKey, cfg.Payment.Production, paymentRepo, userRepo, sysLogger)
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)

	// Chat bot
	gateway := service.NewBotGateway(answerService, annotationService)
	dispatcher := bot.NewDispatcher(bot.NewStore(), gateway, gateway, sysLogger)

	auth := middleware.NewAuth(userRepo, sessions, cfg.App.SuperAdminToken)

	return &Container{
		Logger:   sysLogger,
		Auth:     auth,
		Sessions: sessions,

		AnswerController:     controller.NewAnswerController(answerService, auth, cfg.App.HostnameLabel),
		ChatController:       controller.NewChatController(dispatcher, auth),
		DocumentController:   controller.NewDocumentController(documentService, auth),
		SavedReplyController: controller.NewSavedReplyController(annotationService, auth),
		AnnotationController: controller.NewAnnotationController(annotationService, auth),
		InboxController:      controller.NewInboxController(inboxService, wsHub, auth),
		UserController:       controller.NewUserController(userService, auth),
		PaymentController:    controller.NewPaymentController(paymentService, auth),

		AnalyticsConsumer:   analyticsConsumer,
		NotificationService: notifService,
		WebSocketHub:        wsHub,
	}
}
