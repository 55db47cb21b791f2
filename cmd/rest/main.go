package main

import (
	"context"
	"log"

	"qa-assistant-be/internal/bootstrap"
	"qa-assistant-be/internal/config"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/internal/server"
	"qa-assistant-be/internal/tracer"
	"qa-assistant-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ForwardEmailToken{},
		&model.Document{},
		&model.Annotation{},
		&model.ParaphraseQuestion{},
		&model.AnnotationAnswer{},
		&model.Event{},
		&model.Coverage{},
		&model.PaymentOrder{},
	); err != nil {
		log.Panicf("Migration failed: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	if err := container.AnalyticsConsumer.Start(context.Background()); err != nil {
		log.Panicf("Failed to start analytics consumer: %v", err)
	}
	if err := container.NotificationService.Start(); err != nil {
		log.Printf("[WARN] Inbox notifications unavailable: %v", err)
	}

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
