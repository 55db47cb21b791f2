package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/repository/contract"
)

// JSON writes a result in the uniform response envelope. Handlers that
// already built a full envelope (a map with a success key) pass through
// untouched.
func JSON(c *fiber.Ctx, result interface{}) error {
	if m, ok := result.(fiber.Map); ok {
		if _, has := m["success"]; has {
			return c.JSON(m)
		}
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  result,
	})
}

// SessionCookies keeps the session cookie in sync with the server side
// session after the handler ran: a new session id gets a fresh cookie, a
// cookie whose session is gone is cleared and its server record dropped.
func SessionCookies(sessions contract.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// cookie maintenance runs on error responses too
		err := c.Next()

		sessionID := SessionID(c)
		cookie := c.Cookies(SessionCookieName)

		switch {
		case sessionID == "" && cookie != "":
			session, err := sessions.Get(c.Context(), cookie)
			if err == nil && session != nil {
				_ = sessions.Delete(c.Context(), cookie)
			}
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    "",
				Expires:  time.Unix(0, 0),
				MaxAge:   -1,
				HTTPOnly: true,
			})
		case sessionID != "" && sessionID != cookie:
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Expires:  time.Now().Add(entity.SessionTTL),
				HTTPOnly: true,
			})
		}
		return err
	}
}
