package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	// reports whether the database answers; nil skips the check
	ping func(ctx context.Context) error
}

func NewHandler(ping func(ctx context.Context) error) *Handler { return &Handler{ping: ping} }

func (h *Handler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			c.Logger().Warn("health: database ping failed: ", err)
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
