package dto

import "qa-assistant-be/pkg/responder"

// QuestionAnswered is the analytics message published after every answered
// request, consumed off the response path.
type QuestionAnswered struct {
	UserID         string                   `json:"userId"`
	Question       string                   `json:"question"`
	QuestionSource string                   `json:"questionSource"`
	Answers        []responder.AnswerRecord `json:"answers"`
	Answered       bool                     `json:"answered"`
	Automatic      bool                     `json:"automatic"`
	Duration       float64                  `json:"durationSeconds"`
}
