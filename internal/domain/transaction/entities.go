package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table: transactions. Append-only, one row per successful payment.
type Transaction struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TransactionID string `gorm:"column:transaction_id;size:60;not null;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`
	// FK to loans.id (numeric)
	LoanID       uint64          `gorm:"column:loan_id;not null;index:idx_transactions_loan" json:"-"`
	PaidAmount   decimal.Decimal `gorm:"column:paid_amount;type:decimal(18,6);not null" json:"paid_amount"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(18,6);not null" json:"balance_after"`
	CreatedAt    time.Time       `gorm:"column:transaction_datetime;autoCreateTime" json:"transaction_datetime"`
}

func (Transaction) TableName() string { return "transactions" }

// TotalPaid sums paid amounts; zero for an empty slice.
func TotalPaid(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.PaidAmount)
	}
	return total
}
