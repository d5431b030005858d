package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/session"
)

// bindValid binds the JSON body into req and validates it, writing the
// 400/422 response itself. ok is false when the handler should return.
func bindValid(c echo.Context, req any) (ok bool, err error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// callerID is the user id put on the request context by middleware.Auth.
func callerID(c echo.Context) string {
	return session.UserID(c.Request().Context())
}
