package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"loan-ledger/internal/domain/apperr"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/policy"
	"loan-ledger/internal/domain/transaction"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/pkg/id"
)

const (
	MaxMonths = 600
	// attempts per insert when a generated reference collides
	maxRefAttempts = 3
)

type Usecase struct {
	uow   uow.UnitOfWork
	loans loan.Repository
	txns  transaction.Repository
	log   *logrus.Logger

	now           func() time.Time
	newLoanNumber func(time.Time) string
	newTxnID      func(time.Time) string
}

func NewUsecase(tx uow.UnitOfWork, loans loan.Repository, txns transaction.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{
		uow:           tx,
		loans:         loans,
		txns:          txns,
		log:           log,
		now:           time.Now,
		newLoanNumber: id.NewLoanNumber,
		newTxnID:      id.NewTransactionID,
	}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func validateCreate(lenderID string, in CreateLoanInput) error {
	switch {
	case !in.Principal.IsPositive():
		return apperr.Validation("principal_amount", "must be greater than zero")
	case in.Months < 1:
		return apperr.Validation("loan_months", "must be at least 1")
	case in.Months > MaxMonths:
		return apperr.Validation("loan_months", fmt.Sprintf("must be at most %d", MaxMonths))
	case in.MonthlyRate.IsNegative():
		return apperr.Validation("monthly_interest_rate", "must not be negative")
	case !loan.HasCents(in.Principal):
		return apperr.Validation("principal_amount", "must have at most 2 decimal places and 12 integer digits")
	case !loan.HasCents(in.MonthlyRate):
		return apperr.Validation("monthly_interest_rate", "must have at most 2 decimal places and 12 integer digits")
	case in.MonthlyRate.GreaterThan(loan.MaxMonthlyRate):
		return apperr.Validation("monthly_interest_rate", "must be at most "+loan.MaxMonthlyRate.String())
	case strings.TrimSpace(in.BorrowerID) == "":
		return apperr.Validation("borrower_id", "is required")
	case in.BorrowerID == lenderID:
		return apperr.Validation("borrower_id", "borrower must differ from lender")
	}
	t := loan.ComputeTerms(in.Principal, in.MonthlyRate, in.Months)
	if t.TotalAmount.GreaterThan(loan.MaxAmount) {
		return apperr.Validation("principal_amount", "total amount exceeds "+loan.MaxAmount.StringFixed(2))
	}
	return nil
}

// CreateLoan records a new ACTIVE loan from lenderID to in.BorrowerID.
func (u *Usecase) CreateLoan(ctx context.Context, lenderID string, in CreateLoanInput) (*LoanDTO, error) {
	in.BorrowerID = strings.TrimSpace(in.BorrowerID)
	if err := validateCreate(lenderID, in); err != nil {
		return nil, err
	}

	var created *loan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Users.GetByUserID(ctx, lenderID); err != nil {
			return userLookupErr("lender_id", "lender not found", err)
		}
		if _, err := r.Users.GetByUserID(ctx, in.BorrowerID); err != nil {
			return userLookupErr("borrower_id", "borrower not found", err)
		}
		return u.insertWithRetry("loan_number", func() error {
			l := loan.New(u.newLoanNumber(u.now()), lenderID, in.BorrowerID, in.Principal, in.MonthlyRate, in.Months)
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			created = l
			return nil
		})
	})
	if err != nil {
		return nil, u.fail(err, logrus.Fields{"lender_id": lenderID, "borrower_id": in.BorrowerID}, "create loan")
	}

	u.log.WithFields(logrus.Fields{
		"loan_number":  created.LoanNumber,
		"lender_id":    created.LenderID,
		"borrower_id":  created.BorrowerID,
		"total_amount": money(created.TotalAmount),
	}).Info("loan created")
	dto := toLoanDTO(created)
	dto.Role = RoleLender
	return &dto, nil
}

// RecordPayment applies amount to the loan on behalf of payerID. The loan
// row stays locked from the balance read until the new transaction and
// balance are committed.
func (u *Usecase) RecordPayment(ctx context.Context, loanNumber, payerID string, amount decimal.Decimal) (*TransactionDTO, error) {
	if !amount.IsPositive() {
		return nil, loan.ErrAmountNotPos
	}
	// before the row lock, so an oversized amount never holds it
	if !loan.WithinScale(amount, loan.LedgerPlaces) {
		return nil, loan.ErrAmountScale
	}

	var (
		txn       *transaction.Transaction
		completed bool
	)
	err := u.uow.WithinLoanTx(ctx, loanNumber, func(r uow.Repos, l *loan.Loan) error {
		if err := policy.AuthorizePay(payerID, l); err != nil {
			return err
		}
		after, err := l.ApplyPayment(amount)
		if err != nil {
			return err
		}
		err = u.insertWithRetry("transaction_id", func() error {
			t := &transaction.Transaction{
				TransactionID: u.newTxnID(u.now()),
				LoanID:        l.ID,
				PaidAmount:    amount,
				BalanceAfter:  after,
			}
			if err := r.Transactions.Create(ctx, t); err != nil {
				return err
			}
			txn = t
			return nil
		})
		if err != nil {
			return err
		}
		completed = !l.IsActive()
		return r.Loans.Save(ctx, l)
	})
	if err != nil {
		return nil, u.fail(err, logrus.Fields{"loan_number": loanNumber, "user_id": payerID, "amount": money(amount)}, "record payment")
	}

	fields := logrus.Fields{
		"loan_number":    loanNumber,
		"transaction_id": txn.TransactionID,
		"amount":         money(amount),
		"balance_after":  money(txn.BalanceAfter),
	}
	u.log.WithFields(fields).Info("payment recorded")
	if completed {
		u.log.WithField("loan_number", loanNumber).Info("loan completed")
	}
	dto := toTransactionDTO(loanNumber, txn)
	return &dto, nil
}

// GetLoanView returns the loan with its transactions (newest first) and
// the sum paid so far. Only the lender and the borrower may see it.
func (u *Usecase) GetLoanView(ctx context.Context, loanNumber, requesterID string) (*LoanViewDTO, error) {
	l, err := u.loans.GetByLoanNumber(ctx, loanNumber)
	if err != nil {
		return nil, u.fail(err, logrus.Fields{"loan_number": loanNumber}, "load loan")
	}
	if err := policy.AuthorizeView(requesterID, l); err != nil {
		return nil, u.fail(err, logrus.Fields{"loan_number": loanNumber, "user_id": requesterID}, "view loan")
	}

	txns, err := u.txns.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, u.fail(err, logrus.Fields{"loan_number": loanNumber}, "list transactions")
	}

	view := &LoanViewDTO{
		Loan:         toLoanDTO(l),
		Transactions: make([]TransactionDTO, 0, len(txns)),
		TotalPaid:    money(transaction.TotalPaid(txns)),
	}
	view.Loan.Role = roleOf(requesterID, l)
	for i := range txns {
		view.Transactions = append(view.Transactions, toTransactionDTO(l.LoanNumber, &txns[i]))
	}
	return view, nil
}

// ListLoansForUser returns every loan userID lends or borrows, newest first.
func (u *Usecase) ListLoansForUser(ctx context.Context, userID string) ([]LoanDTO, error) {
	out := []LoanDTO{}
	if userID == "" {
		return out, nil
	}
	loans, err := u.loans.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, u.fail(err, logrus.Fields{"user_id": userID}, "list loans")
	}
	for i := range loans {
		dto := toLoanDTO(&loans[i])
		dto.Role = roleOf(userID, &loans[i])
		out = append(out, dto)
	}
	return out, nil
}

func roleOf(userID string, l *loan.Loan) Role {
	if userID == l.LenderID {
		return RoleLender
	}
	return RoleBorrower
}

// insertWithRetry calls insert until it stops failing on a duplicate key;
// insert is expected to generate a fresh reference on every call.
func (u *Usecase) insertWithRetry(field string, insert func() error) error {
	var err error
	for attempt := 1; attempt <= maxRefAttempts; attempt++ {
		if err = insert(); !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		u.log.WithFields(logrus.Fields{"field": field, "attempt": attempt}).Warn("reference collision, retrying")
	}
	return &apperr.Error{Kind: apperr.KindConflict, Field: field, Reason: "could not allocate a unique reference", Err: err}
}

func userLookupErr(field, reason string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(field, reason)
	}
	return err
}

// fail maps storage errors onto the apperr taxonomy and logs the outcome:
// application errors at Warn, everything else at Error.
func (u *Usecase) fail(err error, fields logrus.Fields, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = loan.ErrNotFound
	}
	entry := u.log.WithFields(fields).WithField("op", op)
	if kind := apperr.KindOf(err); kind != "" {
		entry.WithField("kind", string(kind)).Warn(apperr.ReasonOf(err))
		return err
	}
	entry.WithError(err).Error("ledger failure")
	return fmt.Errorf("%s: %w", op, err)
}
