package id

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const stampLayout = "20060102150405"

// NewLoanNumber returns "LN-<UTC yyyymmddhhmmss>-<4 hex>".
func NewLoanNumber(now time.Time) string {
	return "LN-" + now.UTC().Format(stampLayout) + "-" + randHex(4)
}

// NewTransactionID returns "TXN-<UTC yyyymmddhhmmss>-<5 hex>".
func NewTransactionID(now time.Time) string {
	return "TXN-" + now.UTC().Format(stampLayout) + "-" + randHex(5)
}

// randHex returns n (<= 32) lowercase hex chars taken from a random v4 UUID.
func randHex(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[:n]
}
