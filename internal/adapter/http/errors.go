package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/domain/apperr"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindConflict, apperr.KindInvalidState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError renders err as an ErrorResponse. Errors outside the apperr
// taxonomy are reported as a bare 500 without their text.
func respondError(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	if kind == "" {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	resp := ErrorResponse{Error: apperr.ReasonOf(err)}
	if field := apperr.FieldOf(err); field != "" {
		resp.Details = []FieldError{{Field: field, Message: resp.Error}}
	}
	return c.JSON(statusFor(kind), resp)
}
