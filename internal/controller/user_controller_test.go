package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa-assistant-be/internal/dto"
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/middleware"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/service"
)

type stubUserService struct {
	user    *entity.User
	session *entity.Session

	plans []string
}

func (s *stubUserService) Login(_ context.Context, userID, password string) (*entity.User, *entity.Session, error) {
	if s.user == nil || s.user.UserID != userID || password != "secret" {
		return nil, nil, apierr.User(apierr.InvalidCredentialsText)
	}
	return s.user, s.session, nil
}

func (s *stubUserService) Logout(context.Context, string) error { return nil }

func (s *stubUserService) Profile(user *entity.User) *dto.Profile {
	return &dto.Profile{UserID: user.UserID}
}

func (s *stubUserService) SetThreshold(context.Context, *entity.User, string, string) error {
	return nil
}

func (s *stubUserService) SetPlan(_ context.Context, _ *entity.User, plan string) error {
	s.plans = append(s.plans, plan)
	return nil
}

func (s *stubUserService) SetTermsAgreed(context.Context, *entity.User, string) error { return nil }
func (s *stubUserService) CompleteOnboarding(context.Context, *entity.User) error     { return nil }

func (s *stubUserService) Stats(context.Context, *entity.User) (*dto.Stats, error) {
	return &dto.Stats{}, nil
}

func (s *stubUserService) CreateUser(context.Context, string, string) (*entity.User, error) {
	return nil, nil
}
func (s *stubUserService) DeleteUser(context.Context, string) error { return nil }

func (s *stubUserService) RequestForwardEmail(context.Context, *entity.User, string) error {
	return nil
}
func (s *stubUserService) VerifyForwardEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}

var _ service.IUserService = (*stubUserService)(nil)

func newUserApp(svc service.IUserService, user *entity.User) *fiber.App {
	auth := middleware.NewAuth(&stubUserRepo{user: user}, stubSessionStore{}, "")

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(nopLogger{})})
	app.Use(middleware.CORS())
	app.Use(middleware.Params())
	app.Use(auth.Middleware())
	app.Use(middleware.SessionCookies(stubSessionStore{}))

	NewUserController(svc, auth).RegisterRoutes(app.Group("/api/0.1"))
	return app
}

func aliceWithThreshold() *entity.User {
	return &entity.User{
		UserID:            "alice",
		Token:             "tok-alice",
		AdminToken:        "adm-alice",
		DocumentThreshold: "medium",
	}
}

func TestLoginReturnsSessionAndAdminToken(t *testing.T) {
	user := aliceWithThreshold()
	svc := &stubUserService{user: user, session: &entity.Session{SessionID: "sess-1", UserID: "alice"}}
	app := newUserApp(svc, user)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/user/login?login=alice&password=secret", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, apierr.ValidCredentialsText, env.Result["message"])
	assert.Equal(t, "sess-1", env.Result["sessionId"])
	assert.Equal(t, "adm-alice", env.Result["adminToken"])

	// the fresh session also lands in the cookie
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c.Value
		}
	}
	assert.Equal(t, "sess-1", cookie)
}

func TestGetUserTokenKey(t *testing.T) {
	user := aliceWithThreshold()
	app := newUserApp(&stubUserService{user: user}, user)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/user/get-user-token?admintoken=adm-alice", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "tok-alice", env.Result["userToken"])
}

func TestGetDefaultThreshold(t *testing.T) {
	user := aliceWithThreshold()
	app := newUserApp(&stubUserService{user: user}, user)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/user/get-default-threshold?admintoken=adm-alice", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "medium", env.Result["threshold"])
}

func TestSetPlanIsSelfService(t *testing.T) {
	user := aliceWithThreshold()
	svc := &stubUserService{user: user}
	app := newUserApp(svc, user)

	// a logged-in user changes their own plan, no super admin needed
	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/user/set-plan?admintoken=adm-alice&plan=pro", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.Equal(t, "pro", env.Result["plan"])
	assert.Equal(t, []string{"pro"}, svc.plans)

	// anonymous requests are still rejected
	resp, err = app.Test(httptest.NewRequest(http.MethodGet,
		"/api/0.1/user/set-plan?plan=pro", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env = decodeEnvelope(t, resp)
	assert.Equal(t, apierr.NotLoggedText, env.Result["message"])
}
