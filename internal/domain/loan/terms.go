package loan

import "github.com/shopspring/decimal"

const (
	// principal, rate and monthly installment are entered and quoted in cents
	InputPlaces = 2
	// cents * cent-rate / 100 never needs more than six places, so balances
	// and payments are kept at this scale
	LedgerPlaces = 6

	// decimal(18,6) leaves twelve integer digits
	intDigits = 12
	// inputs with more fractional digits than this are rejected before any
	// arithmetic touches them
	maxFracDigits = 32
)

var (
	hundred    = decimal.NewFromInt(100)
	scaleLimit = decimal.New(1, intDigits)

	MaxAmount = decimal.RequireFromString("9999999999.99")
	// decimal(5,2) column bound
	MaxMonthlyRate = decimal.RequireFromString("999.99")
)

type Terms struct {
	TotalInterest decimal.Decimal
	TotalAmount   decimal.Decimal
	MonthlyAmount decimal.Decimal
}

// ComputeTerms applies flat interest on the principal:
//
//	total_interest = principal * rate/100 * months   (exact)
//	total_amount   = principal + total_interest      (exact)
//	monthly_amount = total_amount / months           (rounded to cents)
//
// The monthly rounding remainder is not tracked; the last payment simply
// settles whatever balance is left.
func ComputeTerms(principal, monthlyRate decimal.Decimal, months int) Terms {
	m := decimal.NewFromInt(int64(months))
	interest := principal.Mul(monthlyRate).Mul(m).Div(hundred)
	total := principal.Add(interest)

	monthly := decimal.Zero
	if months > 0 {
		monthly = total.DivRound(m, InputPlaces)
	}
	return Terms{TotalInterest: interest, TotalAmount: total, MonthlyAmount: monthly}
}

// WithinScale reports whether d has at most places fractional digits and
// at most twelve integer digits. The exponent is checked first so a
// value like 1e2000000000 is refused without being expanded.
func WithinScale(d decimal.Decimal, places int32) bool {
	if e := d.Exponent(); e < -maxFracDigits || e > intDigits {
		return false
	}
	return d.Equal(d.Truncate(places)) && d.Abs().LessThan(scaleLimit)
}

// HasCents reports whether d is an in-range amount with at most two
// decimal places.
func HasCents(d decimal.Decimal) bool { return WithinScale(d, InputPlaces) }
