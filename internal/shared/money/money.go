package money

import "fmt"

// FromCents formats a cent amount with its currency symbol.
// E.g., 125000 BHD -> "BHD 1250.00"
func FromCents(cents int64, currency string) string {
	major := float64(cents) / 100.0
	switch currency {
	case "EUR":
		return fmt.Sprintf("€%.2f", major)
	case "USD":
		return fmt.Sprintf("$%.2f", major)
	case "GBP":
		return fmt.Sprintf("£%.2f", major)
	default:
		return fmt.Sprintf("%s %.2f", currency, major)
	}
}

// Decimal renders cents as a plain "1250.00" string for API payloads.
func Decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
