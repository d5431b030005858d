package loanmock

import (
	"context"

	domain "loan-ledger/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups without a func return context.Canceled; writes are no-ops.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	GetByLoanNumberFn          func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	GetByLoanNumberForUpdateFn func(ctx context.Context, loanNumber string) (*domain.Loan, error)
	ListByParticipantFn        func(ctx context.Context, userID string) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanNumber(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberFn != nil {
		return m.GetByLoanNumberFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanNumberForUpdate(ctx context.Context, loanNumber string) (*domain.Loan, error) {
	if m.GetByLoanNumberForUpdateFn != nil {
		return m.GetByLoanNumberForUpdateFn(ctx, loanNumber)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByParticipant(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByParticipantFn != nil {
		return m.ListByParticipantFn(ctx, userID)
	}
	return nil, context.Canceled
}
