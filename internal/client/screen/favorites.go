package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"glow/internal/domain/model"
)

const favoritesFetchConcurrency = 4

type FavoritesState struct {
	Products []model.Product
	Loading  bool
	Failed   bool
}

// FavoritesView resolves the favorited ids to products, in id order.
// Products the server no longer knows are skipped.
type FavoritesView struct {
	*lifetime
	catalog Catalog
	favs    Favorites
	log     zerolog.Logger

	mu    sync.RWMutex
	state FavoritesState
}

func NewFavoritesView(ctx context.Context, catalog Catalog, favs Favorites, log zerolog.Logger) *FavoritesView {
	return &FavoritesView{
		lifetime: newLifetime(ctx),
		catalog:  catalog,
		favs:     favs,
		log:      log.With().Str("view", "favorites").Logger(),
		state:    FavoritesState{Products: []model.Product{}},
	}
}

func (v *FavoritesView) Load(ctx context.Context) error {
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	v.state.Loading = true
	v.mu.Unlock()

	ids := v.favs.IDs()
	found := make([]*model.Product, len(ids))
	failed := make([]bool, len(ids))

	fctx := detach(ctx)
	var g errgroup.Group
	g.SetLimit(favoritesFetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := v.catalog.GetProduct(fctx, id)
			found[i], failed[i] = p, err != nil
			return nil
		})
	}
	_ = g.Wait()

	if v.closed() {
		v.mu.Lock()
		v.state.Loading = false
		v.mu.Unlock()
		return ErrClosed
	}

	next := FavoritesState{Products: make([]model.Product, 0, len(ids))}
	for i, p := range found {
		if failed[i] {
			next.Failed = true
		}
		if p != nil {
			next.Products = append(next.Products, *p)
		}
	}

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()
	return nil
}

func (v *FavoritesView) State() FavoritesState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
