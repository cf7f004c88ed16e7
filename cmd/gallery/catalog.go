package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/gallery/internal/catalog"
	"github.com/Veraticus/gallery/internal/cli"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the art catalog",
	}

	cmd.AddCommand(catalogListCmd(a))
	cmd.AddCommand(catalogBrandsCmd(a))

	return cmd
}

func catalogListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Long: `List catalog items, optionally narrowed by a name search and a brand.
Items marked with ♥ are in your favorites.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, _ := cmd.Flags().GetString("query")
			brandFlag, _ := cmd.Flags().GetString("brand")

			var brand *string
			if cmd.Flags().Changed("brand") {
				brand = &brandFlag
			}

			d, err := a.openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			items, err := fetchCatalog(cmd.Context(), cmd.ErrOrStderr(), d)
			if err != nil {
				return err
			}

			favs := d.repo.Load(cmd.Context())
			printItems(cmd.OutOrStdout(), catalog.Visible(items, query, brand), favs)
			return nil
		},
	}

	cmd.Flags().StringP("query", "q", "", "case-insensitive name search")
	cmd.Flags().StringP("brand", "b", "", "only show items from this brand")

	return cmd
}

func catalogBrandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "brands",
		Short: "List the brands present in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			items, err := fetchCatalog(cmd.Context(), cmd.ErrOrStderr(), d)
			if err != nil {
				return err
			}

			for _, brand := range catalog.Brands(items) {
				fmt.Fprintln(cmd.OutOrStdout(), brand)
			}
			return nil
		},
	}
}

// fetchCatalog lists the catalog behind a spinner on w.
func fetchCatalog(ctx context.Context, w io.Writer, d *deps) ([]model.Item, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan]Fetching catalog...[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	items, err := d.catalog.List(ctx)
	close(done)
	_ = bar.Finish()

	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	return items, nil
}

func printItems(w io.Writer, items []model.Item, favs model.FavoriteSet) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No art matches your search")
		return
	}

	for _, item := range items {
		heart := " "
		if favs.Contains(item.ID) {
			heart = cli.FavoriteIcon
		}

		price := model.FormatPrice(item.DiscountedPrice())
		if deal := item.Deal(); deal.IsPositive() {
			price += fmt.Sprintf(" (%s, was %s)", model.FormatDeal(deal), model.FormatPrice(item.Price))
		}

		fmt.Fprintf(w, "%s %-6s %-32s %-20s %s\n", heart, item.ID, item.ArtName, item.Brand, price)
	}
}
