package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schema only for tests (decimals as text, no DDL bounds) ---

type userSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	UserID       string    `gorm:"size:50;uniqueIndex;column:user_id"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Email        string    `gorm:"uniqueIndex;column:email"`
	Phone        string    `gorm:"column:phone"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userSQLite) TableName() string { return "users" }

type loanSQLite struct {
	ID                  uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	LoanNumber          string    `gorm:"size:50;uniqueIndex;column:loan_number"`
	LenderID            string    `gorm:"column:lender_id"`
	BorrowerID          string    `gorm:"column:borrower_id"`
	PrincipalAmount     string    `gorm:"type:text;column:principal_amount"`
	MonthlyInterestRate string    `gorm:"type:text;column:monthly_interest_rate"`
	LoanMonths          int       `gorm:"column:loan_months"`
	TotalInterest       string    `gorm:"type:text;column:total_interest"`
	TotalAmount         string    `gorm:"type:text;column:total_amount"`
	MonthlyAmount       string    `gorm:"type:text;column:monthly_amount"`
	RemainingAmount     string    `gorm:"type:text;column:remaining_amount"`
	Status              string    `gorm:"type:text;column:status"` // ← no enum
	CreatedAt           time.Time `gorm:"column:loan_created_datetime"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type transactionSQLite struct {
	ID            uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	TransactionID string    `gorm:"size:60;uniqueIndex;column:transaction_id"`
	LoanID        uint64    `gorm:"column:loan_id"`
	PaidAmount    string    `gorm:"type:text;column:paid_amount"`
	BalanceAfter  string    `gorm:"type:text;column:balance_after"`
	CreatedAt     time.Time `gorm:"column:transaction_datetime"`
}

func (transactionSQLite) TableName() string { return "transactions" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
// A single connection keeps every query on the same in-memory database and
// serializes transactions the way row locks would.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(&userSQLite{}, &loanSQLite{}, &transactionSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
