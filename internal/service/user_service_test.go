package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/pkg/responder"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeMailer struct {
	to  string
	url string
}

func (f *fakeMailer) SendForwardEmailVerification(to, verifyURL string) error {
	f.to = to
	f.url = verifyURL
	return nil
}

type fakeUserStore struct {
	users []*entity.User
}

func (f *fakeUserStore) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}
func (f *fakeUserStore) Update(context.Context, *entity.User) error { return nil }
func (f *fakeUserStore) Delete(context.Context, string) error       { return nil }

func (f *fakeUserStore) FindByUserID(_ context.Context, userID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserStore) FindByToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserStore) FindByAdminToken(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserStore) CreateForwardEmailToken(context.Context, *entity.ForwardEmailToken) error {
	return nil
}
func (f *fakeUserStore) FindForwardEmailToken(context.Context, string) (*entity.ForwardEmailToken, error) {
	return nil, nil
}
func (f *fakeUserStore) DeleteForwardEmailToken(context.Context, string) error { return nil }

type fakeSessions struct{}

func (fakeSessions) Create(_ context.Context, userID string) (*entity.Session, error) {
	return &entity.Session{SessionID: "s-" + userID, UserID: userID}, nil
}
func (fakeSessions) Get(context.Context, string) (*entity.Session, error) { return nil, nil }
func (fakeSessions) Delete(context.Context, string) error                 { return nil }

type fakeDocumentRepo struct {
	documents []*entity.Document
}

func (f *fakeDocumentRepo) Save(_ context.Context, document *entity.Document, _ bool) error {
	f.documents = append(f.documents, document)
	return nil
}
func (f *fakeDocumentRepo) List(context.Context, string, []string, string) ([]*entity.Document, error) {
	return f.documents, nil
}
func (f *fakeDocumentRepo) Find(context.Context, string, string) (*entity.Document, error) {
	return nil, nil
}
func (f *fakeDocumentRepo) Delete(context.Context, string, string) error  { return nil }
func (f *fakeDocumentRepo) DeleteAllByUser(context.Context, string) error { return nil }

type fakeEventRepo struct {
	events   []*entity.Event
	coverage []*entity.Coverage
}

func (f *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeEventRepo) Update(context.Context, *entity.Event) error { return nil }
func (f *fakeEventRepo) FindByID(context.Context, int64) (*entity.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) List(context.Context, string, contract.EventFilter) ([]*entity.Event, int64, error) {
	return f.events, int64(len(f.events)), nil
}
func (f *fakeEventRepo) ListAll(context.Context, string) ([]*entity.Event, error) {
	return f.events, nil
}
func (f *fakeEventRepo) Counts(context.Context, string) (int64, int64, error) {
	return int64(len(f.events)), 0, nil
}
func (f *fakeEventRepo) SaveCoverage(_ context.Context, coverage *entity.Coverage) error {
	f.coverage = append(f.coverage, coverage)
	return nil
}
func (f *fakeEventRepo) ListCoverage(context.Context, string) ([]*entity.Coverage, error) {
	return f.coverage, nil
}
func (f *fakeEventRepo) DeleteAllByUser(context.Context, string) error { return nil }

var (
	_ contract.UserRepository     = (*fakeUserStore)(nil)
	_ contract.SessionStore       = (*fakeSessions)(nil)
	_ contract.DocumentRepository = (*fakeDocumentRepo)(nil)
	_ contract.EventRepository    = (*fakeEventRepo)(nil)
)

func statsService(events *fakeEventRepo, annotations *fakeAnnotationRepo, documents *fakeDocumentRepo) IUserService {
	return NewUserService(&fakeUserStore{}, fakeSessions{}, documents, annotations, events,
		&fakeMailer{}, "http://localhost", nopLogger{})
}

func answeredEvent(question, answer, sourceType, sourceID, matched string, duration float64, created time.Time) *entity.Event {
	return &entity.Event{
		UserID:    "u1",
		Question:  question,
		Answered:  true,
		Duration:  duration,
		CreatedAt: created,
		Answers: []responder.AnswerRecord{{
			AnswerText:      answer,
			SourceType:      sourceType,
			SourceID:        sourceID,
			MatchedQuestion: matched,
		}},
	}
}

func TestStatsAggregation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := &fakeEventRepo{
		events: []*entity.Event{
			answeredEvent("opening hours?", "9 to 5", responder.SourceSavedReply, "ann-1", "what are your opening hours", 0.2, now),
			answeredEvent("where are you?", "Berlin", responder.SourceDocument, "doc-1", "", 0.6, now.Add(time.Minute)),
			answeredEvent("who founded it?", "Ada", responder.SourceDocument, "doc-gone", "", 0.4, now.Add(2*time.Minute)),
			{UserID: "u1", Question: "what is the meaning of life?", CreatedAt: now.Add(3 * time.Minute)},
		},
		coverage: []*entity.Coverage{{Coverage: 0.5, CreatedAt: now}},
	}
	annotations := &fakeAnnotationRepo{annotations: []*entity.Annotation{
		{AnnotationID: "sr-1", SavedReply: true, Question: "what are your opening hours"},
	}}
	documents := &fakeDocumentRepo{documents: []*entity.Document{
		{DocumentID: "doc-1", Title: "Office handbook"},
	}}

	stats, err := statsService(events, annotations, documents).Stats(context.Background(), testUser())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalSavedReplies)
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, 4, stats.TotalQuestions)
	assert.Equal(t, 1, stats.Automatic)
	assert.Equal(t, 2, stats.Assisted)
	assert.Equal(t, 1, stats.Unanswered)
	// the average spans every question, answered or not
	assert.InDelta(t, (0.2+0.6+0.4)/4, stats.AverageResponseTime, 1e-9)

	require.Len(t, stats.Questions, 4)
	assert.Equal(t, "automatic", stats.Questions[0].Status)
	assert.Equal(t, "what are your opening hours", stats.Questions[0].MatchedQuestion)
	assert.Equal(t, "assisted", stats.Questions[1].Status)
	assert.Equal(t, "unanswered", stats.Questions[3].Status)
	assert.Equal(t, now.Unix(), stats.Questions[0].Created)

	require.Len(t, stats.Coverage, 1)
	assert.Equal(t, 0.5, stats.Coverage[0].Coverage)
	assert.Equal(t, now.Unix(), stats.Coverage[0].Time)
}

func TestStatsSourceTitles(t *testing.T) {
	now := time.Now()
	events := &fakeEventRepo{events: []*entity.Event{
		answeredEvent("q1", "a", responder.SourceSavedReply, "ann-1", "q", 0.1, now),
		answeredEvent("q2", "a", responder.SourceSavedReply, "ann-2", "q", 0.1, now),
		answeredEvent("q3", "a", responder.SourceDocument, "doc-1", "", 0.1, now),
		answeredEvent("q4", "a", responder.SourceDocument, "doc-gone", "", 0.1, now),
		{UserID: "u1", Question: "q5", CreatedAt: now},
	}}
	documents := &fakeDocumentRepo{documents: []*entity.Document{
		{DocumentID: "doc-1", Title: "Office handbook"},
	}}

	stats, err := statsService(events, &fakeAnnotationRepo{}, documents).Stats(context.Background(), testUser())
	require.NoError(t, err)

	byTitle := map[string]float64{}
	for _, source := range stats.Sources {
		byTitle[source.Title] = source.Percent
	}
	assert.InDelta(t, 40.0, byTitle["Saved replies"], 1e-9)
	assert.InDelta(t, 20.0, byTitle["Unanswered"], 1e-9)
	assert.InDelta(t, 20.0, byTitle["Office handbook"], 1e-9)
	assert.InDelta(t, 20.0, byTitle["Deleted document"], 1e-9)
	// most used source first
	assert.Equal(t, "Saved replies", stats.Sources[0].Title)
}

func TestStatsEmptyAccount(t *testing.T) {
	stats, err := statsService(&fakeEventRepo{}, &fakeAnnotationRepo{}, &fakeDocumentRepo{}).
		Stats(context.Background(), testUser())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalQuestions)
	assert.Zero(t, stats.AverageResponseTime)
	assert.Empty(t, stats.Sources)
	assert.Empty(t, stats.Coverage)
}
