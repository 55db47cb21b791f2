package service

import (
	"context"
	"encoding/json"

	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/pkg/events"
	"qa-assistant-be/pkg/nats"
)

// Pusher delivers a payload to every live connection of a user.
type Pusher interface {
	SendToUser(userID string, payload []byte)
}

// INotificationService bridges bus events to websocket clients so open
// inboxes update without polling.
type INotificationService interface {
	Start() error
}

type notificationService struct {
	subscriber *nats.Subscriber
	pusher     Pusher
	log        logger.ILogger
}

func NewNotificationService(subscriber *nats.Subscriber, pusher Pusher, log logger.ILogger) INotificationService {
	return &notificationService{subscriber: subscriber, pusher: pusher, log: log}
}

func (s *notificationService) Start() error {
	if s.subscriber == nil {
		return nil
	}
	return s.subscriber.Subscribe("events."+events.TypeInboxQuestion, "inbox-notifier",
		func(_ context.Context, event events.Event) error {
			return s.handle(event)
		})
}

func (s *notificationService) handle(event events.Event) error {
	payload := event.Payload()
	userID, _ := payload["userId"].(string)
	if userID == "" {
		return nil
	}
	data, err := json.Marshal(map[string]interface{}{
		"type":    event.EventType(),
		"payload": payload,
	})
	if err != nil {
		return err
	}
	s.pusher.SendToUser(userID, data)
	return nil
}
