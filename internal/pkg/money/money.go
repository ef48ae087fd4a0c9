// internal/pkg/money/money.go
package money

import (
	"fmt"
	"strconv"
)

// Format converts a storefront money amount to a human-readable currency string.
// E.g., "10.00" EUR -> "€10.00"
func Format(amount, currencyCode string) string {
	if amount == "" {
		return ""
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return fmt.Sprintf("%s %s", amount, currencyCode)
	}

	symbol := Symbol(currencyCode)
	if symbol == currencyCode {
		return fmt.Sprintf("%.2f %s", value, currencyCode)
	}
	return fmt.Sprintf("%s%.2f", symbol, value)
}

// Symbol returns the display symbol for a currency code, or the code itself
// when no symbol is known.
func Symbol(code string) string {
	switch code {
	case "EUR":
		return "€"
	case "USD":
		return "$"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	case "TRY":
		return "₺"
	default:
		return code
	}
}
