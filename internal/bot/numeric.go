package bot

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// The heuristics below carve a candidate arithmetic expression out of a
// natural language question: everything from the first token that looks
// like the start of an expression up to the last token that looks like the
// end of one.
var (
	whitespace      = regexp.MustCompile(`\s+`)
	expressionStart = regexp.MustCompile(`^(?:[0-9(-]|pi|tau|exp|sin|cos|tan|arcsin|arccos|arctan2|arctan|log|sqrt|abs|floor|ceil)`)
	expressionEnd   = regexp.MustCompile(`[0-9)]$|^(?:pi|tau|e)$`)
)

var mathFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt":    unary(math.Sqrt),
	"exp":     unary(math.Exp),
	"log":     unary(math.Log),
	"abs":     unary(math.Abs),
	"floor":   unary(math.Floor),
	"ceil":    unary(math.Ceil),
	"sin":     unary(math.Sin),
	"cos":     unary(math.Cos),
	"tan":     unary(math.Tan),
	"arcsin":  unary(math.Asin),
	"arccos":  unary(math.Acos),
	"arctan":  unary(math.Atan),
	"arctan2": binary(math.Atan2),
}

var mathConstants = map[string]interface{}{
	"pi":  math.Pi,
	"tau": 2 * math.Pi,
	"e":   math.E,
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("expected a number, got %T", args[0])
		}
		return fn(x), nil
	}
}

func binary(fn func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
		}
		x, okX := args[0].(float64)
		y, okY := args[1].(float64)
		if !okX || !okY {
			return nil, fmt.Errorf("expected numbers, got %T and %T", args[0], args[1])
		}
		return fn(x, y), nil
	}
}

// TryNumericalAnswer extracts an arithmetic expression from the question
// and evaluates it. It reports ok=false whenever the question does not
// contain something evaluable; it never errors on garbage input.
func TryNumericalAnswer(question string) (expression, result string, ok bool) {
	trimmed := strings.TrimSpace(question)
	// only the final punctuation mark comes off: "3+2?." keeps its "?"
	if n := len(trimmed); n > 0 {
		switch trimmed[n-1] {
		case '?', '.', '!':
			trimmed = trimmed[:n-1]
		}
	}
	if trimmed == "" {
		return "", "", false
	}

	words := whitespace.Split(trimmed, -1)

	start := -1
	for i, word := range words {
		if expressionStart.MatchString(strings.ToLower(word)) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", "", false
	}
	words = words[start:]

	end := len(words)
	for i := len(words) - 1; i >= 0; i-- {
		if expressionEnd.MatchString(strings.ToLower(words[i])) {
			end = i + 1
			break
		}
	}

	expression = strings.Join(words[:end], " ")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expression, mathFunctions)
	if err != nil {
		return "", "", false
	}
	value, err := parsed.Evaluate(mathConstants)
	if err != nil {
		return "", "", false
	}

	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", "", false
		}
		result = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		result = strconv.FormatBool(v)
	default:
		return "", "", false
	}
	return expression, result, true
}
