// Package policy holds the access rules for loans. The functions are pure:
// they only look at the caller's identity and the loan passed in.
package policy

import (
	"loan-ledger/internal/domain/apperr"
	"loan-ledger/internal/domain/loan"
)

// ErrAccessDenied is deliberately generic so a denial reveals nothing
// about the loan beyond its existence.
var (
	ErrAccessDenied = apperr.Authorization("access denied")
	ErrNotBorrower  = apperr.Authorization("only the borrower can pay this loan")
)

// CanView is true iff userID is the lender or the borrower.
func CanView(userID string, l *loan.Loan) bool {
	return l != nil && l.IsParticipant(userID)
}

// CanPay is true iff userID is the borrower and the loan is still active.
func CanPay(userID string, l *loan.Loan) bool {
	return l != nil && userID != "" && userID == l.BorrowerID && l.IsActive()
}

func AuthorizeView(userID string, l *loan.Loan) error {
	if !CanView(userID, l) {
		return ErrAccessDenied
	}
	return nil
}

// AuthorizePay distinguishes the two ways CanPay can fail: a caller who is
// not the borrower gets an authorization error, the borrower of a settled
// loan gets an invalid-state error.
func AuthorizePay(userID string, l *loan.Loan) error {
	if CanPay(userID, l) {
		return nil
	}
	if l == nil || userID == "" || userID != l.BorrowerID {
		return ErrNotBorrower
	}
	return loan.ErrCompleted
}
