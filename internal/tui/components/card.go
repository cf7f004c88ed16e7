package components

import (
	"strings"

	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Card renders one catalog item as a grid tile.
func Card(theme themes.Theme, item model.Item, width int, favorite, focused bool) string {
	inner := max(8, width-4)

	style := theme.Card
	if focused {
		style = theme.CardFocused
	}

	name := Truncate(item.ArtName, inner-2)
	header := theme.Favorite.Render(themes.Heart(favorite)) + " " + theme.Bold.Render(name)

	lines := []string{
		header,
		theme.Faint.Render(Truncate(item.Brand, inner)),
		PriceLine(theme, item.Price, item.LimitedTimeDeal),
	}

	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

// PriceLine renders the discounted price, and the original price and
// discount when a deal applies.
func PriceLine(theme themes.Theme, price decimal.Decimal, deal decimal.NullDecimal) string {
	if !deal.Valid || !deal.Decimal.IsPositive() {
		return theme.Price.Render(model.FormatPrice(price))
	}

	discounted := price.Mul(decimal.NewFromInt(1).Sub(deal.Decimal))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Price.Render(model.FormatPrice(discounted)),
		" ",
		theme.OldPrice.Render(model.FormatPrice(price)),
		" ",
		theme.Deal.Render(model.FormatDeal(deal.Decimal)),
	)
}

// FavoriteRow renders one line of the favorites list.
func FavoriteRow(theme themes.Theme, entry model.FavoriteEntry, width int, focused, selecting, marked bool) string {
	var b strings.Builder
	if selecting {
		if marked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	}
	b.WriteString(theme.Favorite.Render(themes.Heart(true)))
	b.WriteString(" ")

	price := PriceLine(theme, entry.Price, entry.Discount)
	nameWidth := max(8, width-lipgloss.Width(b.String())-lipgloss.Width(price)-2)
	b.WriteString(lipgloss.NewStyle().Width(nameWidth).Render(Truncate(entry.ArtName, nameWidth)))
	b.WriteString(" ")
	b.WriteString(price)

	if focused {
		return theme.Highlighted.Render(b.String())
	}
	return b.String()
}

// Truncate shortens s to width runes, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
