// Package amortization derives the cost figures of a fixed-installment
// financing plan from its financed amount, installment value and count.
//
// Every function is pure. Non-positive inputs are not an error: they mean the
// figures are not computable yet (a form still being filled in), and every
// derived rate comes back as 0.
package amortization

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Breakdown holds every figure derived from the three plan scalars
type Breakdown struct {
	TotalAmount          decimal.Decimal `json:"total_amount"`
	TotalInterest        decimal.Decimal `json:"total_interest"`
	EffectiveMonthlyRate float64         `json:"effective_monthly_rate"`
	SimpleRate           float64         `json:"simple_rate"`
}

// Calculate computes the full breakdown for a plan
func Calculate(financedAmount, installmentValue decimal.Decimal, totalInstallments int) Breakdown {
	total := TotalAmount(installmentValue, totalInstallments)

	return Breakdown{
		TotalAmount:          total,
		TotalInterest:        TotalInterest(total, financedAmount),
		EffectiveMonthlyRate: EffectiveMonthlyRate(financedAmount, installmentValue, totalInstallments),
		SimpleRate:           SimpleRate(financedAmount, installmentValue, totalInstallments),
	}
}

// TotalAmount returns installmentValue × totalInstallments
func TotalAmount(installmentValue decimal.Decimal, totalInstallments int) decimal.Decimal {
	return installmentValue.Mul(decimal.NewFromInt(int64(totalInstallments)))
}

// TotalInterest returns totalAmount − financedAmount
func TotalInterest(totalAmount, financedAmount decimal.Decimal) decimal.Decimal {
	return totalAmount.Sub(financedAmount)
}

// EffectiveMonthlyRate returns the compound monthly rate r, as a percentage,
// that solves F × (1+r)^N = I × N.
//
// This is a single-compounding solve over the whole term, not the annuity IRR
// where F = I × [1-(1+r)^-N]/r. Figures shown to users depend on it.
func EffectiveMonthlyRate(financedAmount, installmentValue decimal.Decimal, totalInstallments int) float64 {
	interest, ok := computableInterest(financedAmount, installmentValue, totalInstallments)
	if !ok {
		return 0
	}

	ratio := financedAmount.Add(interest).Div(financedAmount).InexactFloat64()
	rate := math.Pow(ratio, 1/float64(totalInstallments)) - 1

	return rate * 100
}

// SimpleRate returns the total, non-compounded markup over the financed
// amount as a percentage
func SimpleRate(financedAmount, installmentValue decimal.Decimal, totalInstallments int) float64 {
	interest, ok := computableInterest(financedAmount, installmentValue, totalInstallments)
	if !ok {
		return 0
	}

	return interest.Div(financedAmount).Mul(hundred).InexactFloat64()
}

// InstallmentValue splits the financed amount evenly across the installments,
// rounded to cents
func InstallmentValue(financedAmount decimal.Decimal, totalInstallments int) decimal.Decimal {
	if !financedAmount.IsPositive() || totalInstallments <= 0 {
		return decimal.Zero
	}

	return financedAmount.Div(decimal.NewFromInt(int64(totalInstallments))).Round(2)
}

func computableInterest(financedAmount, installmentValue decimal.Decimal, totalInstallments int) (decimal.Decimal, bool) {
	if !financedAmount.IsPositive() || !installmentValue.IsPositive() || totalInstallments <= 0 {
		return decimal.Zero, false
	}

	interest := TotalInterest(TotalAmount(installmentValue, totalInstallments), financedAmount)
	if !interest.IsPositive() {
		return decimal.Zero, false
	}

	return interest, true
}
