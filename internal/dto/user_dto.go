package dto

// Profile is the get-profile response shape.
type Profile struct {
	UserID               string  `json:"userId"`
	Plan                 string  `json:"plan"`
	TermsAgreed          bool    `json:"termsAgreed"`
	OnboardingCompleted  bool    `json:"onboardingCompleted"`
	DocumentThreshold    string  `json:"documentThreshold"`
	SavedReplyThreshold  string  `json:"savedReplyThreshold"`
	ForwardEmail         *string `json:"forwardEmail"`
	ForwardEmailVerified bool    `json:"forwardEmailVerified"`
}

// CoveragePoint is one sample of the coverage time series.
type CoveragePoint struct {
	Coverage float64 `json:"coverage"`
	Time     int64   `json:"time"`
}

// QuestionStat is one entry of the per-question history in the stats
// response. Answer and MatchedQuestion are only set for answered questions.
type QuestionStat struct {
	Created         int64   `json:"created"`
	Duration        float64 `json:"duration"`
	Question        string  `json:"question"`
	Status          string  `json:"status"`
	Answer          string  `json:"answer,omitempty"`
	MatchedQuestion string  `json:"matchedQuestion,omitempty"`
}

// SourcePercent is the share of assisted answers drawn from one source,
// with the source resolved to a display title.
type SourcePercent struct {
	Source  string  `json:"source"`
	Title   string  `json:"title"`
	Percent float64 `json:"percent"`
}

// Stats is the account usage aggregation.
type Stats struct {
	AverageResponseTime float64         `json:"averageResponseTime"`
	TotalSavedReplies   int             `json:"totalSavedReplies"`
	TotalDocuments      int             `json:"totalDocuments"`
	TotalQuestions      int             `json:"totalQuestions"`
	Automatic           int             `json:"automatic"`
	Assisted            int             `json:"assisted"`
	Unanswered          int             `json:"unanswered"`
	Sources             []SourcePercent `json:"sources"`
	Questions           []QuestionStat  `json:"questions"`
	Coverage            []CoveragePoint `json:"coverage"`
}
