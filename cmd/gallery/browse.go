package main

import (
	"github.com/Veraticus/gallery/internal/tui"
	"github.com/Veraticus/gallery/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:         "browse",
		Short:       "Open the interactive catalog browser",
		Annotations: map[string]string{logToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			d, err := a.openDeps(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = d.Close() }()

			theme, _ := cmd.Flags().GetString("theme")
			noHelp, _ := cmd.Flags().GetBool("no-help")

			return tui.Run(ctx,
				tui.WithCatalog(d.catalog),
				tui.WithFavorites(d.repo),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithHelp(!noHelp),
			)
		},
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-help", false, "hide the key help line")

	return cmd
}
