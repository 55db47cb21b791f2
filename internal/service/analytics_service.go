package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/pkg/events"
)

// TopicQuestionAnswered is the in-process analytics topic.
const TopicQuestionAnswered = "analytics.question_answered"

// Coverage estimate constants: a floor for any account that records
// questions at all plus a share scaled by the automatic-answer ratio.
const (
	coverageFloor = 60.0
	coverageSpan  = 35.0
)

// BusPublisher is the external event bus hookup; nil when the bus is not
// configured.
type BusPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IAnalyticsPublisher records answered questions without ever blocking the
// caller's response path.
type IAnalyticsPublisher interface {
	PublishQuestionAnswered(record *dto.QuestionAnswered)
}

type analyticsPublisher struct {
	publisher message.Publisher
	log       logger.ILogger
}

func NewAnalyticsPublisher(publisher message.Publisher, log logger.ILogger) IAnalyticsPublisher {
	return &analyticsPublisher{publisher: publisher, log: log}
}

func (p *analyticsPublisher) PublishQuestionAnswered(record *dto.QuestionAnswered) {
	go func() {
		payload, err := json.Marshal(record)
		if err != nil {
			p.log.Warn("analytics", "failed to encode analytics record", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := p.publisher.Publish(TopicQuestionAnswered, msg); err != nil {
			p.log.Warn("analytics", "failed to publish analytics record", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

// IAnalyticsConsumer drains the analytics topic into the event store and
// fans inbox notifications out on the event bus.
type IAnalyticsConsumer interface {
	Start(ctx context.Context) error
}

type analyticsConsumer struct {
	subscriber message.Subscriber
	eventsRepo contract.EventRepository
	bus        BusPublisher
	log        logger.ILogger
}

func NewAnalyticsConsumer(subscriber message.Subscriber, eventsRepo contract.EventRepository, bus BusPublisher, log logger.ILogger) IAnalyticsConsumer {
	return &analyticsConsumer{
		subscriber: subscriber,
		eventsRepo: eventsRepo,
		bus:        bus,
		log:        log,
	}
}

func (c *analyticsConsumer) Start(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, TopicQuestionAnswered)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			c.handle(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

func (c *analyticsConsumer) handle(ctx context.Context, msg *message.Message) {
	var record dto.QuestionAnswered
	if err := json.Unmarshal(msg.Payload, &record); err != nil {
		c.log.Warn("analytics", "dropping malformed analytics record", map[string]interface{}{
			"messageId": msg.UUID,
			"error":     err.Error(),
		})
		return
	}

	event := &entity.Event{
		UserID:         record.UserID,
		Question:       record.Question,
		QuestionSource: record.QuestionSource,
		Answers:        record.Answers,
		Answered:       record.Answered,
		Automatic:      record.Automatic,
		Duration:       record.Duration,
	}
	if err := c.eventsRepo.Create(ctx, event); err != nil {
		c.log.Error("analytics", "failed to store event", map[string]interface{}{
			"userId": record.UserID,
			"error":  err.Error(),
		})
		return
	}

	if err := c.updateCoverage(ctx, record.UserID); err != nil {
		c.log.Warn("analytics", "failed to update coverage", map[string]interface{}{
			"userId": record.UserID,
			"error":  err.Error(),
		})
	}

	if c.bus != nil {
		busEvent := events.New(events.TypeInboxQuestion, map[string]interface{}{
			"userId":   record.UserID,
			"eventId":  event.ID,
			"question": record.Question,
			"answered": record.Answered,
		})
		if err := c.bus.Publish(ctx, busEvent); err != nil {
			c.log.Warn("analytics", "failed to publish inbox event", map[string]interface{}{
				"userId": record.UserID,
				"error":  err.Error(),
			})
		}
	}
}

func (c *analyticsConsumer) updateCoverage(ctx context.Context, userID string) error {
	total, automatic, err := c.eventsRepo.Counts(ctx, userID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	coverage := coverageFloor + float64(automatic)/float64(total)*coverageSpan
	return c.eventsRepo.SaveCoverage(ctx, &entity.Coverage{
		UserID:   userID,
		Coverage: coverage,
	})
}
