package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanNumber(ctx context.Context, loanNumber string) (*Loan, error)
	// Locks the row until the surrounding transaction ends.
	GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*Loan, error)
	// Loans where userID is lender or borrower, newest first.
	ListByParticipant(ctx context.Context, userID string) ([]Loan, error)
}
