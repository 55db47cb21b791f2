package entity

import (
	"time"

	"qa-assistant-be/pkg/responder"
)

// Event is one recorded question: the inbox item plus the analytics row.
type Event struct {
	ID             int64
	UserID         string
	Question       string
	QuestionSource string
	Answers        []responder.AnswerRecord
	Answered       bool
	Automatic      bool
	Read           bool
	Archived       bool
	Duration       float64
	CreatedAt      time.Time
	ModifiedAt     time.Time
}

// Coverage is a point-in-time estimate of how many questions the account
// answers automatically.
type Coverage struct {
	ID        int64
	UserID    string
	Coverage  float64
	CreatedAt time.Time
}
