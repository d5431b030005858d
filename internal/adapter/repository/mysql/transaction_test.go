package mysql

import (
	"context"
	"testing"
	"time"

	txnDomain "loan-ledger/internal/domain/transaction"

	"github.com/shopspring/decimal"
)

func makeTxn(txnID string, loanNumericID uint64, paid, after string) *txnDomain.Transaction {
	return &txnDomain.Transaction{
		TransactionID: txnID,
		LoanID:        loanNumericID,
		PaidAmount:    decimal.RequireFromString(paid),
		BalanceAfter:  decimal.RequireFromString(after),
	}
}

func TestTransaction_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeTxn("TXN-001", 777, "200.00", "1000.00")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, err := repo.ListByLoanID(ctx, 777)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByLoanID: %d rows, %v", len(rows), err)
	}
	got := rows[0]
	if got.TransactionID != "TXN-001" || got.LoanID != 777 || !got.PaidAmount.Equal(decimal.NewFromInt(200)) || !got.BalanceAfter.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("transaction_datetime not set")
	}
}

func TestTransaction_FractionalCentsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeTxn("TXN-SUB", 3, "1015.01", "0.00015")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	rows, err := repo.ListByLoanID(ctx, 3)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByLoanID: %d rows, %v", len(rows), err)
	}
	if !rows[0].BalanceAfter.Equal(decimal.RequireFromString("0.00015")) {
		t.Fatalf("balance_after = %s, want 0.00015", rows[0].BalanceAfter)
	}
}

func TestTransaction_DuplicateID(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeTxn("TXN-DUP", 1, "1.00", "9.00")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeTxn("TXN-DUP", 1, "1.00", "8.00")); err == nil {
		t.Fatalf("expected unique violation on transaction_id")
	}
}

func TestTransaction_ListByLoanID_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []transactionSQLite{
		{TransactionID: "TXN-A", LoanID: 5, PaidAmount: "100", BalanceAfter: "1100", CreatedAt: now.Add(-2 * time.Minute)},
		{TransactionID: "TXN-X", LoanID: 6, PaidAmount: "50", BalanceAfter: "50", CreatedAt: now.Add(-90 * time.Second)},
		{TransactionID: "TXN-B", LoanID: 5, PaidAmount: "100", BalanceAfter: "1000", CreatedAt: now.Add(-1 * time.Minute)},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListByLoanID(ctx, 5)
	if err != nil {
		t.Fatalf("ListByLoanID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].TransactionID != "TXN-B" || got[1].TransactionID != "TXN-A" {
		t.Fatalf("order = [%s %s], want [TXN-B TXN-A]", got[0].TransactionID, got[1].TransactionID)
	}
	if total := txnDomain.TotalPaid(got); !total.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("TotalPaid = %s, want 200", total)
	}

	empty, err := repo.ListByLoanID(ctx, 404)
	if err != nil {
		t.Fatalf("ListByLoanID empty: %v", err)
	}
	if len(empty) != 0 || !txnDomain.TotalPaid(empty).IsZero() {
		t.Fatalf("expected no rows and zero total, got %d", len(empty))
	}
}
