package mysql

import (
	"context"

	loanDomain "loan-ledger/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Save writes back only the mutable columns.
func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).
		Model(l).
		Select("remaining_amount", "status", "updated_at").
		Updates(l).Error
}

func (r *LoanRepository) GetByLoanNumber(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_number = ?", loanNumber).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_number = ?", loanNumber).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListByParticipant(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("lender_id = ? OR borrower_id = ?", userID, userID).
		Order("loan_created_datetime DESC, id DESC").
		Find(&out)
	return out, res.Error
}
