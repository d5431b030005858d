package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/transaction"
)

type CreateLoanInput struct {
	BorrowerID  string
	Principal   decimal.Decimal
	MonthlyRate decimal.Decimal
	Months      int
}

// Role of the caller relative to a loan.
type Role string

const (
	RoleLender   Role = "lender"
	RoleBorrower Role = "borrower"
)

// Money fields are two-place strings ("1200.00") unless the value carries
// fractional cents ("1015.01015").
type LoanDTO struct {
	LoanNumber      string    `json:"loan_number"`
	LenderID        string    `json:"lender_id"`
	BorrowerID      string    `json:"borrower_id"`
	Principal       string    `json:"principal_amount"`
	MonthlyRate     string    `json:"monthly_interest_rate"`
	Months          int       `json:"loan_months"`
	TotalInterest   string    `json:"total_interest"`
	TotalAmount     string    `json:"total_amount"`
	MonthlyAmount   string    `json:"monthly_amount"`
	RemainingAmount string    `json:"remaining_amount"`
	Status          string    `json:"status"`
	Role            Role      `json:"role,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type TransactionDTO struct {
	TransactionID string    `json:"transaction_id"`
	LoanNumber    string    `json:"loan_number"`
	PaidAmount    string    `json:"paid_amount"`
	BalanceAfter  string    `json:"balance_after"`
	CreatedAt     time.Time `json:"created_at"`
}

type LoanViewDTO struct {
	Loan         LoanDTO          `json:"loan"`
	Transactions []TransactionDTO `json:"transactions"`
	TotalPaid    string           `json:"total_paid"`
}

func money(d decimal.Decimal) string {
	if loan.HasCents(d) {
		return d.StringFixed(loan.InputPlaces)
	}
	return d.String()
}

func toLoanDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		LoanNumber:      l.LoanNumber,
		LenderID:        l.LenderID,
		BorrowerID:      l.BorrowerID,
		Principal:       money(l.PrincipalAmount),
		MonthlyRate:     money(l.MonthlyInterestRate),
		Months:          l.LoanMonths,
		TotalInterest:   money(l.TotalInterest),
		TotalAmount:     money(l.TotalAmount),
		MonthlyAmount:   money(l.MonthlyAmount),
		RemainingAmount: money(l.RemainingAmount),
		Status:          string(l.Status),
		CreatedAt:       l.CreatedAt,
	}
}

func toTransactionDTO(loanNumber string, t *transaction.Transaction) TransactionDTO {
	return TransactionDTO{
		TransactionID: t.TransactionID,
		LoanNumber:    loanNumber,
		PaidAmount:    money(t.PaidAmount),
		BalanceAfter:  money(t.BalanceAfter),
		CreatedAt:     t.CreatedAt,
	}
}
