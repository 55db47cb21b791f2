package responder

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// QuestionPair is a stored question with its canonical answer, as exposed
// by the saved-reply/annotation store. DocumentID is empty for saved
// replies, which are not anchored to a document.
type QuestionPair struct {
	SourceID   string
	SourceType string
	Question   string
	Answer     string
	DocumentID string
}

// PairSource lists every question phrasing (canonical and paraphrase) the
// user has stored.
type PairSource interface {
	QuestionPairs(ctx context.Context, userToken string) ([]QuestionPair, error)
}

// DocumentText is a document body available for span extraction.
type DocumentText struct {
	DocumentID string
	Title      string
	Text       string
}

// DocumentSource fetches document bodies, optionally restricted by id.
type DocumentSource interface {
	DocumentTexts(ctx context.Context, userToken string, documentIDs []string) ([]DocumentText, error)
}

// Lexical is a word-overlap reference engine. It stands in for the real
// semantic engine so the service runs end to end without the ML stack; the
// scores it produces are crude but honest about their crudeness.
type Lexical struct {
	pairs PairSource
	docs  DocumentSource
}

func NewLexical(pairs PairSource, docs DocumentSource) *Lexical {
	return &Lexical{pairs: pairs, docs: docs}
}

var wordSplitter = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func tokenize(text string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, w := range wordSplitter.Split(strings.ToLower(text), -1) {
		if w != "" {
			tokens[w] = struct{}{}
		}
	}
	return tokens
}

// overlap is the Jaccard index of the two token sets.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func (l *Lexical) AnswersFromSimilarQuestions(ctx context.Context, userToken, question, sourceType string, documentIDs []string, threshold float64) ([]AnswerRecord, error) {
	pairs, err := l.pairs.QuestionPairs(ctx, userToken)
	if err != nil {
		return nil, err
	}
	qTokens := tokenize(question)

	var allowed map[string]struct{}
	if len(documentIDs) > 0 {
		allowed = make(map[string]struct{}, len(documentIDs))
		for _, id := range documentIDs {
			allowed[id] = struct{}{}
		}
	}

	var records []AnswerRecord
	for _, pair := range pairs {
		if sourceType != "all" && sourceType != pair.SourceType {
			continue
		}
		// a document filter drops annotations anchored elsewhere; saved
		// replies are not anchored and always stay in scope
		if allowed != nil && pair.DocumentID != "" {
			if _, ok := allowed[pair.DocumentID]; !ok {
				continue
			}
		}
		score := overlap(qTokens, tokenize(pair.Question))
		if score < threshold {
			continue
		}
		records = append(records, AnswerRecord{
			AnswerText:      pair.Answer,
			Confidence:      score,
			SourceType:      pair.SourceType,
			SourceID:        pair.SourceID,
			MatchedQuestion: pair.Question,
		})
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Confidence > records[j].Confidence })
	return records, nil
}

var sentenceSplitter = regexp.MustCompile(`[.!?]\s+`)

func (l *Lexical) AnswersFromDocuments(ctx context.Context, userToken, question string, documentIDs []string, offset, numberOfItems int, inlineText string, threshold float64) ([]AnswerRecord, error) {
	var docs []DocumentText
	if inlineText != "" {
		docs = []DocumentText{{DocumentID: "inline", Title: "inline", Text: inlineText}}
	} else {
		var err error
		docs, err = l.docs.DocumentTexts(ctx, userToken, documentIDs)
		if err != nil {
			return nil, err
		}
	}
	qTokens := tokenize(question)

	var records []AnswerRecord
	for _, doc := range docs {
		for _, span := range splitSpans(doc.Text) {
			score := overlap(qTokens, tokenize(span.text))
			if score < threshold {
				continue
			}
			ctxStart, ctxEnd := span.start, span.end
			// widen the context window around the answer span
			if ctxStart > 120 {
				ctxStart -= 120
			} else {
				ctxStart = 0
			}
			if ctxEnd+120 < len(doc.Text) {
				ctxEnd += 120
			} else {
				ctxEnd = len(doc.Text)
			}
			records = append(records, AnswerRecord{
				AnswerText:               span.text,
				Confidence:               score,
				SourceType:               SourceDocument,
				SourceID:                 doc.DocumentID,
				AnswerContext:            doc.Text[ctxStart:ctxEnd],
				AnswerTextStartOffset:    span.start,
				AnswerTextEndOffset:      span.end,
				AnswerContextStartOffset: ctxStart,
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Confidence > records[j].Confidence })
	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if numberOfItems >= 0 && len(records) > numberOfItems {
		records = records[:numberOfItems]
	}
	return records, nil
}

type span struct {
	text       string
	start, end int
}

// splitSpans cuts text into sentence-ish spans and keeps their byte
// offsets, which feed the .explain context window.
func splitSpans(text string) []span {
	var spans []span
	start := 0
	for _, loc := range sentenceSplitter.FindAllStringIndex(text, -1) {
		end := loc[0] + 1 // keep the terminating punctuation
		candidate := strings.TrimSpace(text[start:end])
		if candidate != "" {
			spans = append(spans, span{text: candidate, start: start, end: end})
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		spans = append(spans, span{text: rest, start: start, end: len(text)})
	}
	return spans
}
