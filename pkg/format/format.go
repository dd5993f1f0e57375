// Package format renders values for display and classifies them into the
// styling tiers used by the dashboard.
package format

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	CurrencySymbol = "R$"
	DateLayout     = "02/01/2006"
)

// Tier is a display urgency bucket
type Tier string

const (
	TierDanger  Tier = "danger"
	TierWarning Tier = "warning"
	TierSuccess Tier = "success"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats an amount as Brazilian reais, e.g. "R$ 1.234,56"
func Currency(amount decimal.Decimal) string {
	value := amount.Round(2)
	if value.IsNegative() {
		return "-" + CurrencySymbol + " " + printer.Sprintf("%.2f", value.Neg().InexactFloat64())
	}
	return CurrencySymbol + " " + printer.Sprintf("%.2f", value.InexactFloat64())
}

// Date formats a date as DD/MM/YYYY
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// ProgressTier buckets a completion percentage: below 30 is danger, below 70
// is warning, anything else is success.
func ProgressTier(completionPercentage float64) Tier {
	switch {
	case completionPercentage < 30:
		return TierDanger
	case completionPercentage < 70:
		return TierWarning
	default:
		return TierSuccess
	}
}

// DueDateTier buckets the days left until a due date: past due is danger,
// up to a week is warning.
func DueDateTier(daysUntilDue int) Tier {
	switch {
	case daysUntilDue < 0:
		return TierDanger
	case daysUntilDue <= 7:
		return TierWarning
	default:
		return TierSuccess
	}
}
