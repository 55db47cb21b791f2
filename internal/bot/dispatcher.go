package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"qa-assistant-be/internal/constant"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/pkg/responder"
)

// AnswerClient produces the candidate answers for a free-form question.
type AnswerClient interface {
	Answer(ctx context.Context, user *entity.User, question string, numberOfItems int) ([]responder.AnswerRecord, error)
}

// SavedReplyWriter persists replies taught through the .add command.
type SavedReplyWriter interface {
	CreateSavedReply(ctx context.Context, user *entity.User, question, answer string) (string, error)
	AddParaphrase(ctx context.Context, user *entity.User, replyID, question string) error
}

type handlerFunc func(ctx context.Context, user *entity.User, conv *Conversation, message string) (string, error)

type rule struct {
	name   string
	match  func(conv *Conversation, message string) bool
	handle handlerFunc
}

// Dispatcher routes chat messages through an ordered rule list. The first
// matching rule wins; the final rule always matches and treats the message
// as a question.
type Dispatcher struct {
	state   *Store
	answers AnswerClient
	replies SavedReplyWriter
	log     logger.ILogger
	rules   []rule
}

func NewDispatcher(state *Store, answers AnswerClient, replies SavedReplyWriter, log logger.ILogger) *Dispatcher {
	d := &Dispatcher{state: state, answers: answers, replies: replies, log: log}
	d.rules = []rule{
		{
			name: "echo",
			match: func(conv *Conversation, message string) bool {
				return conv.Echo || strings.HasPrefix(message, ".echo")
			},
			handle: d.handleEcho,
		},
		{
			name: "add",
			match: func(conv *Conversation, message string) bool {
				return hasCommandPrefix(message, ".add", ".new") || strings.Contains(message, "|")
			},
			handle: d.handleAdd,
		},
		{
			name: "help",
			match: func(conv *Conversation, message string) bool {
				return hasCommandPrefix(message, ".help", ".man")
			},
			handle: d.handleHelp,
		},
		{
			name: "next",
			match: func(conv *Conversation, message string) bool {
				return hasCommandPrefix(message, ".next", ".more")
			},
			handle: d.handleNext,
		},
		{
			name: "explain",
			match: func(conv *Conversation, message string) bool {
				return hasCommandPrefix(message, ".explain", ".why", ".context", ".conf", ".score", ".index")
			},
			handle: d.handleExplain,
		},
		{
			name: "answer",
			match: func(conv *Conversation, message string) bool {
				return true
			},
			handle: d.handleAnswer,
		},
	}
	return d
}

// Process runs one chat message through the rule list under the
// conversation's lock and returns the bot's reply.
func (d *Dispatcher) Process(ctx context.Context, user *entity.User, conversationID, message string) (string, error) {
	return d.state.WithConversation(conversationID, func(conv *Conversation) (string, error) {
		for _, r := range d.rules {
			if d.safeMatch(r, conv, message) {
				return r.handle(ctx, user, conv, message)
			}
		}
		// the answer rule always matches
		return d.handleAnswer(ctx, user, conv, message)
	})
}

// safeMatch treats a panicking predicate as a non-match so one broken rule
// cannot take the whole conversation down.
func (d *Dispatcher) safeMatch(r rule, conv *Conversation, message string) (matched bool) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Warn("bot", "rule predicate panicked", map[string]interface{}{
				"rule":  r.name,
				"panic": fmt.Sprint(rec),
			})
			matched = false
		}
	}()
	return r.match(conv, message)
}

func hasCommandPrefix(message string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(message, prefix) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) handleEcho(_ context.Context, _ *entity.User, conv *Conversation, message string) (string, error) {
	if strings.HasPrefix(message, ".echo") {
		conv.Echo = !conv.Echo
		return constant.EchoToggledText, nil
	}
	return message, nil
}

func (d *Dispatcher) handleAdd(ctx context.Context, user *entity.User, conv *Conversation, message string) (string, error) {
	body := message
	if strings.HasPrefix(body, ".") {
		if loc := whitespace.FindStringIndex(body); loc != nil {
			body = body[loc[1]:]
		} else {
			body = ""
		}
	}

	segments := strings.Split(body, "|")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
	if len(segments) < 2 || segments[0] == "" || segments[len(segments)-1] == "" {
		return constant.AddReplyUsageText, nil
	}

	questions := segments[:len(segments)-1]
	answer := segments[len(segments)-1]

	replyID, err := d.replies.CreateSavedReply(ctx, user, questions[0], answer)
	if err != nil {
		return "", err
	}
	for _, paraphrase := range questions[1:] {
		if err := d.replies.AddParaphrase(ctx, user, replyID, paraphrase); err != nil {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString("Thanks, I'll remember that:\n")
	if len(questions) == 1 {
		fmt.Fprintf(&sb, "_%s_\n", questions[0])
	} else {
		for _, question := range questions {
			fmt.Fprintf(&sb, "•_%s_\n", question)
		}
	}
	sb.WriteString(">>>")
	sb.WriteString(answer)
	return sb.String(), nil
}

func (d *Dispatcher) handleHelp(_ context.Context, _ *entity.User, _ *Conversation, _ string) (string, error) {
	return constant.BotHelpMessage, nil
}

func (d *Dispatcher) handleNext(_ context.Context, _ *entity.User, conv *Conversation, _ string) (string, error) {
	if !conv.Asked {
		return constant.AskQuestionFirst, nil
	}
	if conv.Cursor+1 >= len(conv.Answers) {
		return constant.RanOutOfAnswersText, nil
	}
	conv.Cursor++
	return conv.Answers[conv.Cursor].AnswerText, nil
}

func (d *Dispatcher) handleExplain(_ context.Context, _ *entity.User, conv *Conversation, _ string) (string, error) {
	current, ok := conv.Current()
	if !ok {
		return constant.AskQuestionFirst, nil
	}

	if current.SourceType == responder.SourceDocument {
		return fmt.Sprintf("From _%s_ (Index %.2f)\n>>>%s",
			current.SourceID, current.Confidence, boldAnswerInContext(current)), nil
	}
	return fmt.Sprintf("I thought you asked (Index %.2f)\n_%s_\n>>>%s",
		current.Confidence, current.MatchedQuestion, current.AnswerText), nil
}

// boldAnswerInContext wraps the answer span of the context window in
// markdown bold markers. Newlines inside the span would break the markers,
// so they are dropped.
func boldAnswerInContext(rec responder.AnswerRecord) string {
	context := rec.AnswerContext
	start := rec.AnswerTextStartOffset - rec.AnswerContextStartOffset
	end := rec.AnswerTextEndOffset - rec.AnswerContextStartOffset
	if start < 0 || end < start || end > len(context) {
		return context
	}
	bold := strings.ReplaceAll(context[start:end], "\n", "")
	return context[:start] + " *" + bold + "* " + context[end:]
}

func (d *Dispatcher) handleAnswer(ctx context.Context, user *entity.User, conv *Conversation, message string) (string, error) {
	answers, err := d.answers.Answer(ctx, user, message, constant.BotAnswerItems)
	if err != nil {
		if ue, ok := apierr.IsUser(err); ok {
			return ue.Message + constant.ErrorHelpMessage, nil
		}
		return "", err
	}

	if expression, result, ok := TryNumericalAnswer(message); ok {
		if len(answers) == 0 || answers[0].Confidence < constant.NumericalExpressionThreshold {
			numeric := responder.AnswerRecord{
				AnswerText:      expression + "=" + result,
				Confidence:      constant.NumericalAnswerConfidence,
				SourceType:      responder.SourceNumerical,
				SourceID:        uuid.NewString(),
				MatchedQuestion: fmt.Sprintf("What is %s ?", expression),
			}
			answers = append([]responder.AnswerRecord{numeric}, answers...)
		}
	}

	conv.Answers = answers
	conv.Cursor = 0
	conv.Asked = true
	conv.LastQuestion = message

	if len(answers) == 0 {
		return constant.DontKnowText, nil
	}
	return answers[0].AnswerText, nil
}
