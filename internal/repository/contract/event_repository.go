package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

// TriState filters on a boolean column: "true", "false" or "both".
type TriState string

const (
	TriTrue  TriState = "true"
	TriFalse TriState = "false"
	TriBoth  TriState = "both"
)

func ValidTriState(v string) bool {
	switch TriState(v) {
	case TriTrue, TriFalse, TriBoth:
		return true
	}
	return false
}

// EventFilter narrows the inbox listing. Archived events are always
// excluded.
type EventFilter struct {
	Read          TriState
	Answered      TriState
	SearchTerm    string
	NumberOfItems int
	Offset        int
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id int64) (*entity.Event, error)
	// List returns one page plus the unpaged total, newest first.
	List(ctx context.Context, userID string, filter EventFilter) ([]*entity.Event, int64, error)
	// ListAll returns every event for the stats aggregation, newest first.
	ListAll(ctx context.Context, userID string) ([]*entity.Event, error)
	// Counts returns the total and automatically answered event counts.
	Counts(ctx context.Context, userID string) (total int64, automatic int64, err error)

	SaveCoverage(ctx context.Context, coverage *entity.Coverage) error
	ListCoverage(ctx context.Context, userID string) ([]*entity.Coverage, error)

	DeleteAllByUser(ctx context.Context, userID string) error
}
