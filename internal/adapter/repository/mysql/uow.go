package mysql

import (
	"context"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:        &UserRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Transactions: &TransactionRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanNumber string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front so concurrent payments queue behind us
		l, err := r.Loans.GetByLoanNumberForUpdate(ctx, loanNumber)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}
