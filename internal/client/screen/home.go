package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

const HomeSectionLimit = 10

type HomeState struct {
	Categories  Section[model.Category]
	Newest      Section[model.Product]
	Best        Section[model.Product]
	Recommended Section[model.Product]
}

// HomeView loads four independent sections. A failed section is empty and
// flagged; the others still render.
type HomeView struct {
	*lifetime
	catalog Catalog
	log     zerolog.Logger

	mu    sync.RWMutex
	state HomeState
}

func NewHomeView(ctx context.Context, catalog Catalog, log zerolog.Logger) *HomeView {
	return &HomeView{
		lifetime: newLifetime(ctx),
		catalog:  catalog,
		log:      log.With().Str("view", "home").Logger(),
		state:    HomeState{},
	}
}

// Load returns ErrClosed when the view was closed before results arrived.
func (v *HomeView) Load(ctx context.Context) error {
	if v.closed() {
		return ErrClosed
	}

	v.mu.Lock()
	v.state.Categories.Loading = true
	v.state.Newest.Loading = true
	v.state.Best.Loading = true
	v.state.Recommended.Loading = true
	v.mu.Unlock()

	fctx := detach(ctx)
	var next HomeState
	var g errgroup.Group
	// セクションごとに失敗を閉じ込めるので goroutine はエラーを返さない
	g.Go(func() error {
		items, err := v.catalog.ListCategories(fctx)
		next.Categories = loaded(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := v.catalog.ListNewest(fctx, HomeSectionLimit)
		next.Newest = loaded(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := v.catalog.ListBest(fctx, HomeSectionLimit)
		next.Best = loaded(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := v.catalog.ListRecommended(fctx, HomeSectionLimit)
		next.Recommended = loaded(items, err)
		return nil
	})
	_ = g.Wait()

	if v.closed() {
		v.mu.Lock()
		v.state.Categories.Loading = false
		v.state.Newest.Loading = false
		v.state.Best.Loading = false
		v.state.Recommended.Loading = false
		v.mu.Unlock()
		return ErrClosed
	}

	v.mu.Lock()
	v.state = next
	v.mu.Unlock()

	failed := next.Categories.Failed || next.Newest.Failed || next.Best.Failed || next.Recommended.Failed
	if failed {
		logger.WithContext(ctx, v.log).Info().
			Bool("categories", !next.Categories.Failed).
			Bool("newest", !next.Newest.Failed).
			Bool("best", !next.Best.Failed).
			Bool("recommended", !next.Recommended.Failed).
			Msg("home loaded partially")
	}
	return nil
}

func (v *HomeView) State() HomeState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}
