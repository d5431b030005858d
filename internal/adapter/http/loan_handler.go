package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"loan-ledger/internal/usecase/ledger"
)

type LoanHandler struct{ uc *ledger.Usecase }

func NewLoanHandler(uc *ledger.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

// Money travels as strings ("1200.00") so no precision is lost in JSON.
type createLoanReq struct {
	BorrowerID          string `json:"borrower_id"           validate:"required"`
	PrincipalAmount     string `json:"principal_amount"      validate:"required,dec2"`
	MonthlyInterestRate string `json:"monthly_interest_rate" validate:"required,dec2"`
	LoanMonths          int    `json:"loan_months"`
}

type paymentReq struct {
	Amount string `json:"amount" validate:"required,dec6"`
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	loans, err := h.uc.ListLoansForUser(c.Request().Context(), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": loans})
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), callerID(c), ledger.CreateLoanInput{
		BorrowerID:  req.BorrowerID,
		Principal:   decimal.RequireFromString(req.PrincipalAmount),
		MonthlyRate: decimal.RequireFromString(req.MonthlyInterestRate),
		Months:      req.LoanMonths,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	view, err := h.uc.GetLoanView(c.Request().Context(), c.Param("loan_number"), callerID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *LoanHandler) RecordPayment(c echo.Context) error {
	var req paymentReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), c.Param("loan_number"), callerID(c),
		decimal.RequireFromString(req.Amount))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
