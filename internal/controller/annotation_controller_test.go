package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
	"qa-assistant-be/internal/service"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) Update(context.Context, *entity.User) error { return nil }
func (s *stubUserRepo) Delete(context.Context, string) error       { return nil }

func (s *stubUserRepo) FindByUserID(_ context.Context, userID string) (*entity.User, error) {
	if s.user != nil && s.user.UserID == userID {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByToken(_ context.Context, token string) (*entity.User, error) {
	if s.user != nil && s.user.Token == token {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) FindByAdminToken(_ context.Context, adminToken string) (*entity.User, error) {
	if s.user != nil && s.user.AdminToken == adminToken {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) CreateForwardEmailToken(context.Context, *entity.ForwardEmailToken) error {
	return nil
}
func (s *stubUserRepo) FindForwardEmailToken(context.Context, string) (*entity.ForwardEmailToken, error) {
	return nil, nil
}
func (s *stubUserRepo) DeleteForwardEmailToken(context.Context, string) error { return nil }

type stubSessionStore struct{}

func (stubSessionStore) Create(_ context.Context, userID string) (*entity.Session, error) {
	return &entity.Session{SessionID: "s-" + userID, UserID: userID}, nil
}
func (stubSessionStore) Get(context.Context, string) (*entity.Session, error) { return nil, nil }
func (stubSessionStore) Delete(context.Context, string) error                 { return nil }

var (
	_ contract.UserRepository = (*stubUserRepo)(nil)
	_ contract.SessionStore   = stubSessionStore{}
)

// createCall records the arguments CreateAnnotation was invoked with.
type createCall struct {
	user        *entity.User
	question    string
	answer      string
	documentID  string
	page        string
	startOffset int
	endOffset   int
	metadata    map[string]interface{}
}

type stubAnnotationService struct {
	creates []createCall
	lists   int
}

func (s *stubAnnotationService) CreateSavedReply(_ context.Context, user *entity.User, question, answer string) (*entity.Annotation, error) {
	return &entity.Annotation{AnnotationID: "sr-1", Answers: []entity.AnnotationAnswer{{AnswerID: "ans-1"}}}, nil
}

func (s *stubAnnotationService) CreateAnnotation(_ context.Context, user *entity.User, question, answer, documentID, page string, startOffset, endOffset int, metadata map[string]interface{}) (*entity.Annotation, error) {
	s.creates = append(s.creates, createCall{
		user:        user,
		question:    question,
		answer:      answer,
		documentID:  documentID,
		page:        page,
		startOffset: startOffset,
		endOffset:   endOffset,
		metadata:    metadata,
	})
	return &entity.Annotation{AnnotationID: "ann-1", Answers: []entity.AnnotationAnswer{{AnswerID: "ans-1"}}}, nil
}

func (s *stubAnnotationService) List(context.Context, *entity.User, contract.AnnotationFilter, int, int) ([]*entity.Annotation, int, error) {
	s.lists++
	return nil, 0, nil
}

func (s *stubAnnotationService) Delete(context.Context, *entity.User, string, bool) error {
	return nil
}
func (s *stubAnnotationService) EditCanonicalQuestion(context.Context, *entity.User, string, string, bool) error {
	return nil
}
func (s *stubAnnotationService) AddParaphrase(context.Context, *entity.User, string, string, bool) (string, error) {
	return "q-1", nil
}
func (s *stubAnnotationService) EditParaphrase(context.Context, *entity.User, string, string) error {
	return nil
}
func (s *stubAnnotationService) DeleteParaphrase(context.Context, *entity.User, string) error {
	return nil
}
func (s *stubAnnotationService) AddAnswer(context.Context, *entity.User, string, string, bool) (string, error) {
	return "a-1", nil
}
func (s *stubAnnotationService) EditAnswer(context.Context, *entity.User, string, string) error {
	return nil
}
func (s *stubAnnotationService) DeleteAnswer(context.Context, *entity.User, string) error {
	return nil
}

var _ service.IAnnotationService = (*stubAnnotationService)(nil)

type envelope struct {
	Success bool                   `json:"success"`
	Result  map[string]interface{} `json:"result"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func newAnnotationApp(svc service.IAnnotationService) *fiber.App {
	auth := middleware.NewAuth(&stubUserRepo{user: &entity.User{
		UserID:     "alice",
		Token:      "tok-alice",
		AdminToken: "adm-alice",
	}}, stubSessionStore{}, "")

	sessions := stubSessionStore{}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(nopLogger{})})
	app.Use(middleware.CORS())
	app.Use(middleware.Params())
	app.Use(auth.Middleware())
	app.Use(middleware.SessionCookies(sessions))

	NewAnnotationController(svc, auth).RegisterRoutes(app.Group("/api/0.1"))
	return app
}

func TestAddAnnotationRequiresDocumentID(t *testing.T) {
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/annotations/add-annotation?admintoken=adm-alice&question=q&answer=a", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, fmt.Sprintf(apierr.MissingParamText, "documentid"), env.Result["message"])
	assert.Empty(t, svc.creates)
}

func TestAddAnnotationRequiresBothOffsets(t *testing.T) {
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	for _, query := range []string{
		"",
		"&startoffset=10",
		"&endoffset=20",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/api/0.1/annotations/add-annotation?admintoken=adm-alice&question=q&answer=a&documentid=doc-1"+query, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		env := decodeEnvelope(t, resp)
		assert.Equal(t, apierr.AnnotationMissingParamsText, env.Result["message"])
	}
	assert.Empty(t, svc.creates)
}

func TestAddAnnotationForwardsAnchor(t *testing.T) {
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/annotations/add-annotation?admintoken=adm-alice"+
			"&question=where&answer=Berlin&documentid=doc-1&page=3&startoffset=10&endoffset=24"+
			"&metadata=%7B%22color%22%3A%22blue%22%7D", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "ann-1", env.Result["annotationId"])
	assert.Equal(t, "ans-1", env.Result["answerId"])

	require.Len(t, svc.creates, 1)
	call := svc.creates[0]
	assert.Equal(t, "alice", call.user.UserID)
	assert.Equal(t, "doc-1", call.documentID)
	assert.Equal(t, "3", call.page)
	assert.Equal(t, 10, call.startOffset)
	assert.Equal(t, 24, call.endOffset)
	assert.Equal(t, map[string]interface{}{"color": "blue"}, call.metadata)
}

func TestAddAnnotationRejectsNonNumericOffsets(t *testing.T) {
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/annotations/add-annotation?admintoken=adm-alice&question=q&answer=a"+
			"&documentid=doc-1&startoffset=ten&endoffset=20", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, svc.creates)
}

func TestAnnotationsRejectBearerToken(t *testing.T) {
	// content management needs a login or admin token, a bearer token is
	// not enough
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/annotations/get-annotations?token=tok-alice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, apierr.NotLoggedText, env.Result["message"])
	assert.Zero(t, svc.lists)
}

func TestAnnotationsAcceptAdminToken(t *testing.T) {
	svc := &stubAnnotationService{}
	app := newAnnotationApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/annotations/get-annotations?admintoken=adm-alice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, svc.lists)
}
