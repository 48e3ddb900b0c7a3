package validation

import (
	"math"

	"github.com/de-tools/property-atlas/pkg/models/domain"
)

const (
	MinInterestRate = 0
	MaxInterestRate = 20
)

// Validate checks each financing input on its own; one invalid field never
// hides the state of another. Nil or NaN counts as not entered.
func Validate(purchasePrice, downPayment, interestRate *float64) domain.ValidationResult {
	return domain.ValidationResult{
		PurchasePriceValid: present(purchasePrice) && *purchasePrice > 0,
		DownPaymentValid:   downPaymentValid(purchasePrice, downPayment),
		InterestRateValid: present(interestRate) &&
			*interestRate >= MinInterestRate && *interestRate <= MaxInterestRate,
	}
}

func ValidateFinancing(p domain.FinancingParameters) domain.ValidationResult {
	return Validate(p.PurchasePrice, p.DownPayment, p.InterestRate)
}

// downPaymentValid only compares against the purchase price when that price
// is itself usable.
func downPaymentValid(purchasePrice, downPayment *float64) bool {
	if !present(downPayment) || *downPayment <= 0 {
		return false
	}
	if present(purchasePrice) && *purchasePrice > 0 {
		return *downPayment < *purchasePrice
	}
	return true
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}
