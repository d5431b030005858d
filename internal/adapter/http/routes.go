package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health *Handler
	Auth   *AuthHandler
	Loans  *LoanHandler
}

// Register mounts every route on e. auth guards the user routes; POSTs
// behind auth also pass through mutating (idempotency when redis is
// configured).
func Register(e *echo.Echo, h Handlers, auth echo.MiddlewareFunc, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	write := append([]echo.MiddlewareFunc{auth}, mutating...)
	e.GET("/me", h.Auth.Me, auth)
	e.GET("/loans", h.Loans.ListLoans, auth)
	e.GET("/loans/:loan_number", h.Loans.GetLoan, auth)
	e.POST("/loans", h.Loans.CreateLoan, write...)
	e.POST("/loans/:loan_number/payments", h.Loans.RecordPayment, write...)
}
