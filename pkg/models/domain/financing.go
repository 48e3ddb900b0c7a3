package domain

const (
	DefaultPurchasePrice = 1_000_000
	DefaultDownPayment   = 100_000
	DefaultInterestRate  = 3.5
)

// FinancingParameters are the user-editable ROI inputs. A nil field means the
// value was not entered.
type FinancingParameters struct {
	PurchasePrice *float64
	DownPayment   *float64
	InterestRate  *float64 // percent
}

// DefaultFinancing is the initial state of every session.
func DefaultFinancing() FinancingParameters {
	return FinancingParameters{
		PurchasePrice: Amount(DefaultPurchasePrice),
		DownPayment:   Amount(DefaultDownPayment),
		InterestRate:  Amount(DefaultInterestRate),
	}
}

// Amount returns a pointer to v.
func Amount(v float64) *float64 {
	return &v
}

// ValueOrZero dereferences v, reading nil as 0.
func ValueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
