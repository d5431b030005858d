package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/session"
)

// Auth requires "Authorization: Bearer <token>" and puts the verified user
// id on the request context (session.UserID).
func Auth(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			userID, err := sessions.Parse(token)
			if err != nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(session.WithUserID(req.Context(), userID)))
			return next(c)
		}
	}
}
