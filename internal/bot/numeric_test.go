package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryNumericalAnswer(t *testing.T) {
	tests := []struct {
		name           string
		question       string
		wantExpression string
		wantResult     string
		wantOK         bool
	}{
		{
			name:           "simple addition with prose prefix",
			question:       "what is 3 + 2?",
			wantExpression: "3 + 2",
			wantResult:     "5",
			wantOK:         true,
		},
		{
			name:           "bare expression",
			question:       "3*4",
			wantExpression: "3*4",
			wantResult:     "12",
			wantOK:         true,
		},
		{
			name:           "function call",
			question:       "what is sqrt(16)?",
			wantExpression: "sqrt(16)",
			wantResult:     "4",
			wantOK:         true,
		},
		{
			name:           "constant",
			question:       "what is 2 * pi",
			wantExpression: "2 * pi",
			wantResult:     "6.283185307179586",
			wantOK:         true,
		},
		{
			name:           "trailing prose is trimmed",
			question:       "what is 10 - 4 equal to please",
			wantExpression: "10 - 4",
			wantResult:     "6",
			wantOK:         true,
		},
		{
			name:           "trailing full stop",
			question:       "what is 3 + 2.",
			wantExpression: "3 + 2",
			wantResult:     "5",
			wantOK:         true,
		},
		{
			// only the last punctuation mark comes off, the rest stays
			// part of the question
			name:     "stacked trailing punctuation",
			question: "what is 3 + 2?!",
			wantOK:   false,
		},
		{
			name:     "no expression at all",
			question: "who is the CEO?",
			wantOK:   false,
		},
		{
			name:     "empty question",
			question: "   ",
			wantOK:   false,
		},
		{
			name:     "looks numeric but is not evaluable",
			question: "what is (3 +",
			wantOK:   false,
		},
		{
			name:     "division by zero",
			question: "what is 1/0?",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expression, result, ok := TryNumericalAnswer(tt.question)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantExpression, expression)
				assert.Equal(t, tt.wantResult, result)
			}
		})
	}
}
