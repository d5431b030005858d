package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error

	// ListByLoanID returns the loan's transactions, most recent first.
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]Transaction, error)
}
