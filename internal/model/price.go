package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func init() {
	// Prices are persisted as JSON numbers, matching the remote feed.
	decimal.MarshalJSONWithoutQuotes = true
}

func applyDeal(price, deal decimal.Decimal) decimal.Decimal {
	if deal.IsZero() {
		return price
	}
	return price.Mul(decimal.NewFromInt(1).Sub(deal))
}

// FormatPrice renders a price without decimals when it is whole and with two
// decimals otherwise.
func FormatPrice(price decimal.Decimal) string {
	if price.Equal(price.Truncate(0)) {
		return "$" + price.StringFixed(0)
	}
	return "$" + price.StringFixed(2)
}

// FormatDeal renders a discount fraction as a rounded negative percentage.
func FormatDeal(deal decimal.Decimal) string {
	return fmt.Sprintf("-%s%%", deal.Mul(hundred).Round(0).String())
}

// FormatRating renders an average rating to one decimal, or N/A.
func FormatRating(avg float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", avg)
}
