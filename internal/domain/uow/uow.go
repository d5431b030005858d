package uow

import (
	"context"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/transaction"
	"loan-ledger/internal/domain/user"
)

// Repos are bound to one database transaction.
type Repos struct {
	Users        user.Repository
	Loans        loan.Repository
	Transactions transaction.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanNumber string, fn func(r Repos, l *loan.Loan) error) error
}
