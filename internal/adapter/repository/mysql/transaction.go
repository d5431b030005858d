package mysql

import (
	"context"

	txnDomain "loan-ledger/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txnDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]txnDomain.Transaction, error) {
	var out []txnDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("transaction_datetime DESC, id DESC").
		Find(&out)
	return out, res.Error
}
