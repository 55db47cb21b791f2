package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/constant"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/pkg/responder"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeAnswerClient struct {
	answers []responder.AnswerRecord
	err     error
	asked   []string
}

func (f *fakeAnswerClient) Answer(_ context.Context, _ *entity.User, question string, _ int) ([]responder.AnswerRecord, error) {
	f.asked = append(f.asked, question)
	return f.answers, f.err
}

type fakeReplyStore struct {
	replies     map[string][]string
	paraphrases map[string][]string
	nextID      int
}

func newFakeReplyStore() *fakeReplyStore {
	return &fakeReplyStore{replies: map[string][]string{}, paraphrases: map[string][]string{}}
}

func (f *fakeReplyStore) CreateSavedReply(_ context.Context, _ *entity.User, question, answer string) (string, error) {
	f.nextID++
	id := fmt.Sprintf("reply-%d", f.nextID)
	f.replies[id] = []string{question, answer}
	return id, nil
}

func (f *fakeReplyStore) AddParaphrase(_ context.Context, _ *entity.User, replyID, question string) error {
	f.paraphrases[replyID] = append(f.paraphrases[replyID], question)
	return nil
}

func testDispatcher(answers *fakeAnswerClient, replies *fakeReplyStore) *Dispatcher {
	if answers == nil {
		answers = &fakeAnswerClient{}
	}
	if replies == nil {
		replies = newFakeReplyStore()
	}
	return NewDispatcher(NewStore(), answers, replies, nopLogger{})
}

func testUser() *entity.User {
	return &entity.User{UserID: "alice", Token: "token-alice"}
}

func TestDispatcherEcho(t *testing.T) {
	d := testDispatcher(nil, nil)
	ctx := context.Background()

	reply, err := d.Process(ctx, testUser(), "conv", ".echo")
	require.NoError(t, err)
	assert.Equal(t, constant.EchoToggledText, reply)

	// echo mode wins over every other rule, including add
	reply, err = d.Process(ctx, testUser(), "conv", "hello | world")
	require.NoError(t, err)
	assert.Equal(t, "hello | world", reply)

	reply, err = d.Process(ctx, testUser(), "conv", ".help")
	require.NoError(t, err)
	assert.Equal(t, ".help", reply)

	// toggling off restores normal dispatch
	_, err = d.Process(ctx, testUser(), "conv", ".echo")
	require.NoError(t, err)
	reply, err = d.Process(ctx, testUser(), "conv", ".help")
	require.NoError(t, err)
	assert.Equal(t, constant.BotHelpMessage, reply)
}

func TestDispatcherAdd(t *testing.T) {
	tests := []struct {
		name            string
		message         string
		wantUsage       bool
		wantQuestion    string
		wantAnswer      string
		wantParaphrases int
		wantInReply     []string
	}{
		{
			name:         "command with pipe",
			message:      ".add What are your hours? | We are open 9 to 5.",
			wantQuestion: "What are your hours?",
			wantAnswer:   "We are open 9 to 5.",
			wantInReply:  []string{"_What are your hours?_\n"},
		},
		{
			name:         "bare pipe without command",
			message:      "Where are you? | Main street 1.",
			wantQuestion: "Where are you?",
			wantAnswer:   "Main street 1.",
		},
		{
			name:            "multiple questions",
			message:         ".new Hours? | Opening times? | 9 to 5.",
			wantQuestion:    "Hours?",
			wantAnswer:      "9 to 5.",
			wantParaphrases: 1,
			wantInReply:     []string{"•_Hours?_\n", "•_Opening times?_\n"},
		},
		{
			name:      "missing answer",
			message:   ".add only a question",
			wantUsage: true,
		},
		{
			name:      "empty segment",
			message:   ".add | answer",
			wantUsage: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replies := newFakeReplyStore()
			d := testDispatcher(nil, replies)

			reply, err := d.Process(context.Background(), testUser(), "conv", tt.message)
			require.NoError(t, err)

			if tt.wantUsage {
				assert.Equal(t, constant.AddReplyUsageText, reply)
				assert.Empty(t, replies.replies)
				return
			}
			require.Len(t, replies.replies, 1)
			assert.Contains(t, reply, "Thanks, I'll remember that:")
			assert.Contains(t, reply, tt.wantQuestion)
			assert.Contains(t, reply, ">>>"+tt.wantAnswer)
			for _, want := range tt.wantInReply {
				assert.Contains(t, reply, want)
			}
			if tt.wantParaphrases == 0 {
				// the bullet list only appears for multiple questions
				assert.NotContains(t, reply, "•")
			}
			for _, stored := range replies.replies {
				assert.Equal(t, []string{tt.wantQuestion, tt.wantAnswer}, stored)
			}
			total := 0
			for _, p := range replies.paraphrases {
				total += len(p)
			}
			assert.Equal(t, tt.wantParaphrases, total)
		})
	}
}

func TestDispatcherAnswerAndNext(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{AnswerText: "first", Confidence: 0.9, SourceType: responder.SourceSavedReply, MatchedQuestion: "Q1"},
		{AnswerText: "second", Confidence: 0.8, SourceType: responder.SourceSavedReply, MatchedQuestion: "Q2"},
	}}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	reply, err := d.Process(ctx, testUser(), "conv", "what are your hours?")
	require.NoError(t, err)
	assert.Equal(t, "first", reply)

	reply, err = d.Process(ctx, testUser(), "conv", ".next")
	require.NoError(t, err)
	assert.Equal(t, "second", reply)

	reply, err = d.Process(ctx, testUser(), "conv", ".next")
	require.NoError(t, err)
	assert.Equal(t, constant.RanOutOfAnswersText, reply)

	// a fresh conversation has no history
	reply, err = d.Process(ctx, testUser(), "other", ".next")
	require.NoError(t, err)
	assert.Equal(t, constant.AskQuestionFirst, reply)
}

func TestDispatcherExplain(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{
			AnswerText:      "reply text",
			Confidence:      0.72,
			SourceType:      responder.SourceSavedReply,
			MatchedQuestion: "What are your opening hours?",
		},
	}}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	reply, err := d.Process(ctx, testUser(), "conv", ".why")
	require.NoError(t, err)
	assert.Equal(t, constant.AskQuestionFirst, reply)

	_, err = d.Process(ctx, testUser(), "conv", "when are you open?")
	require.NoError(t, err)

	reply, err = d.Process(ctx, testUser(), "conv", ".why")
	require.NoError(t, err)
	assert.Contains(t, reply, "I thought you asked (Index 0.72)")
	assert.Contains(t, reply, "_What are your opening hours?_")
	assert.Contains(t, reply, ">>>reply text")

	// explaining twice leaves the cursor alone
	again, err := d.Process(ctx, testUser(), "conv", ".explain")
	require.NoError(t, err)
	assert.Equal(t, reply, again)
}

func TestDispatcherExplainDocumentSource(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{
			AnswerText:               "open at nine",
			Confidence:               0.55,
			SourceType:               responder.SourceDocument,
			SourceID:                 "handbook",
			AnswerContext:            "We are open at nine every day.",
			AnswerTextStartOffset:    7,
			AnswerTextEndOffset:      19,
			AnswerContextStartOffset: 0,
		},
	}}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	_, err := d.Process(ctx, testUser(), "conv", "when do you open?")
	require.NoError(t, err)

	reply, err := d.Process(ctx, testUser(), "conv", ".context")
	require.NoError(t, err)
	assert.Equal(t, "From _handbook_ (Index 0.55)\n>>>We are  *open at nine*  every day.", reply)
}

func TestDispatcherExplainStripsNewlinesFromBoldSpan(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{
			AnswerText:               "open\nat nine",
			Confidence:               0.55,
			SourceType:               responder.SourceDocument,
			SourceID:                 "handbook",
			AnswerContext:            "We are open\nat nine every day.",
			AnswerTextStartOffset:    7,
			AnswerTextEndOffset:      19,
			AnswerContextStartOffset: 0,
		},
	}}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	_, err := d.Process(ctx, testUser(), "conv", "when do you open?")
	require.NoError(t, err)

	// a newline inside the bold span would break the markers
	reply, err := d.Process(ctx, testUser(), "conv", ".context")
	require.NoError(t, err)
	assert.Contains(t, reply, " *openat nine* ")
}

func TestDispatcherNumericalAnswer(t *testing.T) {
	answers := &fakeAnswerClient{}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	reply, err := d.Process(ctx, testUser(), "conv", "what is 3 + 2?")
	require.NoError(t, err)
	assert.Equal(t, "3 + 2=5", reply)

	reply, err = d.Process(ctx, testUser(), "conv", ".why")
	require.NoError(t, err)
	assert.Contains(t, reply, "I thought you asked (Index 0.80)")
	assert.Contains(t, reply, "_What is 3 + 2 ?_")
}

func TestDispatcherNumericalKeepsConfidentAnswer(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{AnswerText: "an engine answer", Confidence: 0.95, SourceType: responder.SourceSavedReply},
	}}
	d := testDispatcher(answers, nil)

	reply, err := d.Process(context.Background(), testUser(), "conv", "what is 3 + 2?")
	require.NoError(t, err)
	assert.Equal(t, "an engine answer", reply)
}

func TestDispatcherUnknownAnswer(t *testing.T) {
	d := testDispatcher(&fakeAnswerClient{}, nil)

	reply, err := d.Process(context.Background(), testUser(), "conv", "completely unanswerable")
	require.NoError(t, err)
	assert.Equal(t, constant.DontKnowText, reply)
}

func TestDispatcherUserErrorBecomesChatReply(t *testing.T) {
	answers := &fakeAnswerClient{err: apierr.User("bad threshold")}
	d := testDispatcher(answers, nil)

	reply, err := d.Process(context.Background(), testUser(), "conv", "some question")
	require.NoError(t, err)
	assert.Equal(t, "bad threshold"+constant.ErrorHelpMessage, reply)
}

func TestDispatcherConversationsAreIsolated(t *testing.T) {
	answers := &fakeAnswerClient{answers: []responder.AnswerRecord{
		{AnswerText: "a1", Confidence: 0.9, SourceType: responder.SourceSavedReply},
		{AnswerText: "a2", Confidence: 0.8, SourceType: responder.SourceSavedReply},
	}}
	d := testDispatcher(answers, nil)
	ctx := context.Background()

	_, err := d.Process(ctx, testUser(), "conv-a", "question?")
	require.NoError(t, err)

	reply, err := d.Process(ctx, testUser(), "conv-b", ".next")
	require.NoError(t, err)
	assert.Equal(t, constant.AskQuestionFirst, reply)
}

func TestDispatcherConcurrentNext(t *testing.T) {
	var answerList []responder.AnswerRecord
	for i := 0; i < 51; i++ {
		answerList = append(answerList, responder.AnswerRecord{
			AnswerText: fmt.Sprintf("answer-%d", i),
			Confidence: 1 - float64(i)/100,
			SourceType: responder.SourceSavedReply,
		})
	}
	d := testDispatcher(&fakeAnswerClient{answers: answerList}, nil)
	ctx := context.Background()

	_, err := d.Process(ctx, testUser(), "conv", "question?")
	require.NoError(t, err)

	// 50 concurrent .next calls must consume exactly answers 1..50 with no
	// duplicates, since conversation state updates are serialized
	var wg sync.WaitGroup
	seen := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := d.Process(ctx, testUser(), "conv", ".next")
			assert.NoError(t, err)
			seen <- reply
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[string]struct{}{}
	for reply := range seen {
		assert.True(t, strings.HasPrefix(reply, "answer-"), "unexpected reply %q", reply)
		_, dup := unique[reply]
		assert.False(t, dup, "duplicate reply %q", reply)
		unique[reply] = struct{}{}
	}
	assert.Len(t, unique, 50)
}
