package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// ItemDetail renders the full record for one item.
type ItemDetail struct {
	Theme    themes.Theme
	Item     model.Item
	Width    int
	Favorite bool
}

// View renders the detail view.
func (d ItemDetail) View() string {
	if d.Width == 0 {
		return ""
	}

	item := d.Item
	width := max(20, d.Width-4)

	labelStyle := d.Theme.Bold.
		Width(14).
		Align(lipgloss.Right)
	valueStyle := d.Theme.Normal
	sectionStyle := lipgloss.NewStyle().
		Width(width).
		MarginLeft(2).
		MarginBottom(1)

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(label+": "),
			valueStyle.Render(value),
		)
	}

	var sections []string

	title := fmt.Sprintf("%s %s", d.Theme.Favorite.Render(themes.Heart(d.Favorite)), item.ArtName)
	sections = append(sections, d.Theme.Title.Render(title))

	info := []string{row("Price", PriceLine(d.Theme, item.Price, item.LimitedTimeDeal))}
	if item.Deal().IsPositive() {
		info = append(info, row("You save", model.FormatPrice(item.Savings())))
	}
	if item.Brand != "" {
		info = append(info, row("Brand", item.Brand))
	}
	if item.GlassSurface {
		info = append(info, row("Surface", "Glass"))
	}
	info = append(info, row("Rating", model.FormatRating(item.AverageRating())))
	sections = append(sections, sectionStyle.Render(strings.Join(info, "\n")))

	if item.Description != "" {
		sections = append(sections, sectionStyle.Render(
			d.Theme.Subtitle.Render("Description")+"\n"+
				lipgloss.NewStyle().Width(width).Render(item.Description),
		))
	}

	reviews := []string{d.Theme.Subtitle.Render(fmt.Sprintf("Feedback (%d)", len(item.Feedbacks)))}
	if len(item.Feedbacks) == 0 {
		reviews = append(reviews, d.Theme.Faint.Render("  No feedback yet"))
	}
	for _, fb := range item.Feedbacks {
		posted := fb.Date
		if t, ok := fb.PostedAt(); ok {
			posted = t.Format("Jan 2, 2006")
		}
		reviews = append(reviews,
			fmt.Sprintf("  %s  %s  %s",
				d.Theme.Bold.Render(fb.Author),
				d.Theme.StatusWarning.Render(fmt.Sprintf("★ %.1f", fb.Rating)),
				d.Theme.Faint.Render(posted),
			),
			"    "+fb.Comment,
		)
	}
	sections = append(sections, sectionStyle.Render(strings.Join(reviews, "\n")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
