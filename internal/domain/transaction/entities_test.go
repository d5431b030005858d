package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalPaid(t *testing.T) {
	assert.True(t, TotalPaid(nil).IsZero())

	txns := []Transaction{
		{PaidAmount: decimal.RequireFromString("120.00")},
		{PaidAmount: decimal.RequireFromString("0.10")},
		{PaidAmount: decimal.RequireFromString("0.20")},
	}
	assert.Equal(t, "120.30", TotalPaid(txns).StringFixed(2))
}
