package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/gallery/internal/catalog"
	"github.com/Veraticus/gallery/internal/cli"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/service"
	"github.com/Veraticus/gallery/internal/storage"
)

// deps is what a command needs to reach the store and the catalog.
type deps struct {
	store   service.KVStore
	repo    *favorites.Repository
	catalog service.CatalogSource
}

func (d *deps) Close() error {
	return d.store.Close()
}

// openDeps opens the configured store and builds the favorites repository
// and the cached catalog on top of it.
func (a *app) openDeps(ctx context.Context) (*deps, error) {
	store, err := storage.Open(ctx, a.settings.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client, err := catalog.NewClient(a.settings.Catalog)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &deps{
		store:   store,
		repo:    favorites.NewRepository(store, favorites.WithKey(a.settings.FavKey)),
		catalog: catalog.NewCachedSource(client, store),
	}, nil
}

// printNotifier writes notices to the command output.
func printNotifier(w io.Writer) service.Notifier {
	return service.NotifierFunc(func(message string) {
		if strings.HasPrefix(message, "Could not") {
			fmt.Fprintln(w, cli.FormatError(message))
			return
		}
		fmt.Fprintln(w, cli.FormatSuccess(message))
	})
}
