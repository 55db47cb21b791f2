package middleware

import (
	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/repository/contract"
)

// SessionCookieName is the cookie carrying the opaque session id.
const SessionCookieName = "session"

const (
	localUser          = "auth_user"
	localUserFromToken = "auth_user_from_token"
	localSessionID     = "auth_session_id"
)

// Auth resolves request credentials and exposes the per-route guards.
type Auth struct {
	users           contract.UserRepository
	sessions        contract.SessionStore
	superAdminToken string
}

func NewAuth(users contract.UserRepository, sessions contract.SessionStore, superAdminToken string) *Auth {
	return &Auth{users: users, sessions: sessions, superAdminToken: superAdminToken}
}

// Middleware resolves the request identity. An admintoken parameter wins
// over the session cookie; unknown credentials leave the request anonymous
// without erroring so credential guessing reveals nothing.
func (a *Auth) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		args := Args(c)

		if adminToken, ok := args["admintoken"]; ok && adminToken != "" {
			user, err := a.users.FindByAdminToken(c.Context(), adminToken)
			if err != nil {
				return err
			}
			if user != nil {
				c.Locals(localUser, user)
			}
			return c.Next()
		}

		sessionID := c.Cookies(SessionCookieName)
		if sessionID == "" {
			return c.Next()
		}
		session, err := a.sessions.Get(c.Context(), sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return c.Next()
		}
		user, err := a.users.FindByUserID(c.Context(), session.UserID)
		if err != nil {
			return err
		}
		if user != nil {
			c.Locals(localUser, user)
			c.Locals(localSessionID, session.SessionID)
		}
		return c.Next()
	}
}

// RequiresAuth rejects anonymous requests.
func (a *Auth) RequiresAuth(c *fiber.Ctx) error {
	if User(c) == nil {
		return apierr.NotLogged()
	}
	return c.Next()
}

// RequiresToken resolves the user a read/write endpoint operates on: the
// explicit token parameter when given, otherwise the logged-in user's own
// token. An explicit token must exist; a missing one without a login is the
// canonical missing parameter error.
func (a *Auth) RequiresToken(c *fiber.Ctx) error {
	args := Args(c)
	token := args["token"]
	if token == "" {
		user := User(c)
		if user == nil {
			return apierr.MissingParameter("token")
		}
		args["token"] = user.Token
		c.Locals(localUserFromToken, user)
		return c.Next()
	}
	user, err := a.users.FindByToken(c.Context(), token)
	if err != nil {
		return err
	}
	if user == nil {
		return apierr.InvalidToken(token)
	}
	c.Locals(localUserFromToken, user)
	return c.Next()
}

// RequiresAdmin gates user management endpoints behind the deployment-wide
// super admin token.
func (a *Auth) RequiresAdmin(c *fiber.Ctx) error {
	token := Args(c)["superadmintoken"]
	if a.superAdminToken == "" || token != a.superAdminToken {
		return apierr.AdminOnly()
	}
	return c.Next()
}

// User returns the logged-in user, or nil for anonymous requests.
func User(c *fiber.Ctx) *entity.User {
	if user, ok := c.Locals(localUser).(*entity.User); ok {
		return user
	}
	return nil
}

// UserFromToken returns the user resolved by RequiresToken.
func UserFromToken(c *fiber.Ctx) *entity.User {
	if user, ok := c.Locals(localUserFromToken).(*entity.User); ok {
		return user
	}
	return nil
}

// SessionID returns the live session id of the request, if any.
func SessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals(localSessionID).(string); ok {
		return id
	}
	return ""
}

// SetSessionID records a freshly created session so the cookie middleware
// sets it on the response.
func SetSessionID(c *fiber.Ctx, sessionID string) {
	c.Locals(localSessionID, sessionID)
}

// ClearSessionID drops the request's session association; the cookie
// middleware then clears the client cookie.
func ClearSessionID(c *fiber.Ctx) {
	c.Locals(localSessionID, "")
	c.Locals(localUser, nil)
}
