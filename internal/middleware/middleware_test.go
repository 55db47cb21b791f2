package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/pkg/random"
	"qa-assistant-be/internal/repository/contract"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}
func (f *fakeUserRepo) Update(context.Context, *entity.User) error { return nil }
func (f *fakeUserRepo) Delete(context.Context, string) error       { return nil }

func (f *fakeUserRepo) FindByUserID(_ context.Context, userID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByToken(_ context.Context, token string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Token == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByAdminToken(_ context.Context, adminToken string) (*entity.User, error) {
	for _, u := range f.users {
		if u.AdminToken == adminToken {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateForwardEmailToken(context.Context, *entity.ForwardEmailToken) error {
	return nil
}
func (f *fakeUserRepo) FindForwardEmailToken(context.Context, string) (*entity.ForwardEmailToken, error) {
	return nil, nil
}
func (f *fakeUserRepo) DeleteForwardEmailToken(context.Context, string) error { return nil }

type fakeSessionStore struct {
	sessions map[string]*entity.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*entity.Session{}}
}

func (f *fakeSessionStore) Create(_ context.Context, userID string) (*entity.Session, error) {
	session := &entity.Session{
		SessionID: random.URLSafeToken(8),
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(entity.SessionTTL),
	}
	f.sessions[session.SessionID] = session
	return session, nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (*entity.Session, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

var _ contract.UserRepository = (*fakeUserRepo)(nil)
var _ contract.SessionStore = (*fakeSessionStore)(nil)

type respEnvelope struct {
	Success bool                   `json:"success"`
	Result  map[string]interface{} `json:"result"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) respEnvelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env respEnvelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return env
}

func newParamsApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nopLogger{})})
	app.Use(CORS())
	app.Use(Params())
	app.All("/api/0.1/echo", func(c *fiber.Ctx) error {
		return JSON(c, Args(c))
	})
	app.All("/api/0.1/email/inbound", func(c *fiber.Ctx) error {
		return JSON(c, Args(c))
	})
	return app
}

func TestParamsMergesAndLowercases(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/echo?Offset=5&question=from+query",
		strings.NewReader(`{"Question":"from body","NumberOfItems":30,"flag":true,"nested":{"a":1}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	// query beats body, keys are lower-cased, scalars become strings
	assert.Equal(t, "from query", env.Result["question"])
	assert.Equal(t, "5", env.Result["offset"])
	assert.Equal(t, "30", env.Result["numberofitems"])
	assert.Equal(t, "true", env.Result["flag"])
	assert.JSONEq(t, `{"a":1}`, env.Result["nested"].(string))
}

func TestParamsFormBody(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/echo",
		strings.NewReader("Question=hello&offset=2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "hello", env.Result["question"])
	assert.Equal(t, "2", env.Result["offset"])
}

func TestParamsTokenMustBeQueryParam(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/echo",
		strings.NewReader(`{"token":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t,
		"Parameter 'token' must be supplied in the query string, not in the request body.",
		env.Result["message"])
}

func TestParamsTokenAllowedInBodyOnExemptRoutes(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/email/inbound",
		strings.NewReader(`{"token":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "secret", env.Result["token"])
}

func TestParamsCallbackMustBeBodyParam(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodGet, "/api/0.1/echo?successcallback=http%3A%2F%2Fevil", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t,
		"Parameter 'successcallback' must be supplied in the request body, not in the query string.",
		env.Result["message"])
}

func TestParamsWebhookBypass(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/echo",
		strings.NewReader(`{"type":"event_callback","token":"slack-token"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "slack-token", env.Result["token"])
	assert.Equal(t, "event_callback", env.Result["type"])
}

func TestParamsInvalidJSON(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodPost, "/api/0.1/echo", strings.NewReader(`{"broken`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, apierr.InvalidJSONText, env.Result["message"])
}

func TestPreflightShortCircuits(t *testing.T) {
	app := newParamsApp()

	req := httptest.NewRequest(http.MethodOptions, "/api/0.1/echo", nil)
	req.Header.Set("Origin", "https://client.example")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "https://client.example", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
