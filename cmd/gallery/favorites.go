package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/gallery/internal/cli"
	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/spf13/cobra"
)

var errClearNotConfirmed = errors.New("refusing to clear favorites without --yes")

func favoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "Manage your favorites",
	}

	cmd.AddCommand(favoritesListCmd(a))
	cmd.AddCommand(favoritesAddCmd(a))
	cmd.AddCommand(favoritesRemoveCmd(a))
	cmd.AddCommand(favoritesClearCmd(a))

	return cmd
}

func favoritesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorites in the order they were added",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			printFavorites(cmd.OutOrStdout(), d.repo.Load(cmd.Context()))
			return nil
		},
	}
}

func favoritesAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id>",
		Short: "Add a catalog item to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			d, err := a.openDeps(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			// Skips the catalog lookup; Add still decides under the repository lock.
			if d.repo.Contains(ctx, args[0]) {
				fmt.Fprintln(out, cli.FormatInfo(args[0]+" is already a favorite"))
				return nil
			}

			item, err := d.catalog.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to look up item %s: %w", args[0], err)
			}

			syncer := favorites.NewSynchronizer(d.repo, printNotifier(out))
			_, err = syncer.Add(ctx, item.ToFavorite())
			return err
		},
	}
}

func favoritesRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove one or more favorites",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := a.openDeps(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			before := len(d.repo.Load(ctx))
			set, err := d.repo.RemoveMany(ctx, args)
			if err != nil {
				return fmt.Errorf("%s: %w", common.UserMessage(err, "Could not remove favorites"), err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Removed %d favorites, %d left", max(0, before-len(set)), len(set))))
			return nil
		},
	}
}

func favoritesClearCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every favorite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errClearNotConfirmed
			}

			d, err := a.openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			if err := d.repo.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Cleared all favorites"))
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "confirm deleting every favorite")

	return cmd
}

func printFavorites(w io.Writer, set model.FavoriteSet) {
	if len(set) == 0 {
		fmt.Fprintln(w, "No favorites yet")
		return
	}

	for i, e := range set {
		price := model.FormatPrice(e.DiscountedPrice())
		if deal := e.Deal(); deal.IsPositive() {
			price += fmt.Sprintf(" (%s)", model.FormatDeal(deal))
		}
		fmt.Fprintf(w, "%3d. %-6s %-32s %s\n", i+1, e.ID, e.ArtName, price)
	}
}
