package constant

const (
	Name       = "qa-assistant"
	Version    = "1.0.0"
	APIVersion = "0.1"
	URLBase    = "/api/" + APIVersion
)

// Answer API limits.
const (
	DefaultMaxAnswers    = 50
	DefaultMaxInlineText = 150000
)
