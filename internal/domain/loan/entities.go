package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/apperr"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

var (
	ErrNotFound       = apperr.NotFound("loan_number", "loan not found")
	ErrCompleted      = apperr.InvalidState("loan already completed")
	ErrExceedsBalance = apperr.Validation("amount", "payment exceeds remaining balance")
	ErrAmountNotPos   = apperr.Validation("amount", "must be greater than zero")
	ErrAmountScale    = apperr.Validation("amount", "must have at most 6 decimal places and 12 integer digits")
)

// Table: loans. Terms are derived once at creation; only RemainingAmount
// and Status change afterwards.
type Loan struct {
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	LoanNumber string `gorm:"column:loan_number;size:50;not null;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	// users.user_id of each side
	LenderID   string `gorm:"column:lender_id;size:50;not null;index:idx_loans_lender" json:"lender_id"`
	BorrowerID string `gorm:"column:borrower_id;size:50;not null;index:idx_loans_borrower" json:"borrower_id"`

	PrincipalAmount     decimal.Decimal `gorm:"column:principal_amount;type:decimal(12,2);not null" json:"principal_amount"`
	MonthlyInterestRate decimal.Decimal `gorm:"column:monthly_interest_rate;type:decimal(5,2);not null" json:"monthly_interest_rate"`
	LoanMonths          int             `gorm:"column:loan_months;not null" json:"loan_months"`

	TotalInterest   decimal.Decimal `gorm:"column:total_interest;type:decimal(18,6);not null" json:"total_interest"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,6);not null" json:"total_amount"`
	MonthlyAmount   decimal.Decimal `gorm:"column:monthly_amount;type:decimal(12,2);not null" json:"monthly_amount"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,6);not null" json:"remaining_amount"`

	Status    Status    `gorm:"column:status;type:varchar(16);default:'ACTIVE';not null" json:"status"`
	CreatedAt time.Time `gorm:"column:loan_created_datetime;autoCreateTime" json:"loan_created_datetime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// New builds an ACTIVE loan with its derived terms and a full balance.
func New(loanNumber, lenderID, borrowerID string, principal, monthlyRate decimal.Decimal, months int) *Loan {
	t := ComputeTerms(principal, monthlyRate, months)
	return &Loan{
		LoanNumber:          loanNumber,
		LenderID:            lenderID,
		BorrowerID:          borrowerID,
		PrincipalAmount:     principal,
		MonthlyInterestRate: monthlyRate,
		LoanMonths:          months,
		TotalInterest:       t.TotalInterest,
		TotalAmount:         t.TotalAmount,
		MonthlyAmount:       t.MonthlyAmount,
		RemainingAmount:     t.TotalAmount,
		Status:              StatusActive,
	}
}

func (l *Loan) IsActive() bool { return l.Status == StatusActive }

func (l *Loan) IsParticipant(userID string) bool {
	return userID != "" && (userID == l.LenderID || userID == l.BorrowerID)
}

// ApplyPayment lowers the remaining balance by amount and completes the
// loan when the balance reaches exactly zero. The loan is left untouched
// when an error is returned.
func (l *Loan) ApplyPayment(amount decimal.Decimal) (decimal.Decimal, error) {
	if !l.IsActive() {
		return decimal.Zero, ErrCompleted
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountNotPos
	}
	if !WithinScale(amount, LedgerPlaces) {
		return decimal.Zero, ErrAmountScale
	}
	if amount.GreaterThan(l.RemainingAmount) {
		return decimal.Zero, ErrExceedsBalance
	}

	after := l.RemainingAmount.Sub(amount)
	l.RemainingAmount = after
	if after.IsZero() {
		l.Status = StatusCompleted
	}
	return after, nil
}
