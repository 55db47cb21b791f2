package dto

// AnswerQuery carries the validated inputs of one answer request.
type AnswerQuery struct {
	Question        string
	SourceType      string
	DocumentIDs     []string
	InlineText      string
	SpeedOrAccuracy string
	// Threshold overrides the user's configured level when non-empty.
	Threshold     string
	NumberOfItems int
	Offset        int
	// QuestionSource labels where the question came from for analytics,
	// for example "API" or "Answerbot".
	QuestionSource string
}
