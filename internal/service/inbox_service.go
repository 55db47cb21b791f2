package service

import (
	"context"
	"strconv"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
)

type IInboxService interface {
	List(ctx context.Context, user *entity.User, filter contract.EventFilter) ([]*entity.Event, int64, error)
	MarkRead(ctx context.Context, user *entity.User, eventID string, read bool) error
	Archive(ctx context.Context, user *entity.User, eventID string) error
}

type inboxService struct {
	events contract.EventRepository
}

func NewInboxService(events contract.EventRepository) IInboxService {
	return &inboxService{events: events}
}

func (s *inboxService) List(ctx context.Context, user *entity.User, filter contract.EventFilter) ([]*entity.Event, int64, error) {
	if filter.Read == "" {
		filter.Read = contract.TriBoth
	}
	if filter.Answered == "" {
		filter.Answered = contract.TriBoth
	}
	if !contract.ValidTriState(string(filter.Read)) || !contract.ValidTriState(string(filter.Answered)) {
		return nil, 0, apierr.ErrInvalidUsage
	}
	return s.events.List(ctx, user.UserID, filter)
}

func (s *inboxService) MarkRead(ctx context.Context, user *entity.User, eventID string, read bool) error {
	event, err := s.find(ctx, user, eventID)
	if err != nil {
		return err
	}
	event.Read = read
	return s.events.Update(ctx, event)
}

func (s *inboxService) Archive(ctx context.Context, user *entity.User, eventID string) error {
	event, err := s.find(ctx, user, eventID)
	if err != nil {
		return err
	}
	event.Archived = true
	return s.events.Update(ctx, event)
}

// find resolves an inbox item, refusing ids that belong to another user.
func (s *inboxService) find(ctx context.Context, user *entity.User, eventID string) (*entity.Event, error) {
	id, err := strconv.ParseInt(eventID, 10, 64)
	if err != nil {
		return nil, apierr.User(apierr.InboxDoesNotExistText, eventID)
	}
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil || event.UserID != user.UserID {
		return nil, apierr.User(apierr.InboxDoesNotExistText, eventID)
	}
	return event, nil
}
