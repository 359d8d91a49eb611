package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

// CatalogFetchLimit is how many newest products the catalog screen pulls once
// and then filters locally.
const CatalogFetchLimit = 100

type CatalogState struct {
	Categories []model.Category
	Selected   model.ID // 空なら全件表示
	Products   []model.Product
	Total      int
	Loading    bool
	Failed     bool
}

// CatalogView fetches once and filters by category in memory. Switching
// categories never touches the network; data is stale until the next Load.
type CatalogView struct {
	*lifetime
	catalog Catalog
	log     zerolog.Logger

	mu         sync.RWMutex
	categories []model.Category
	raw        []model.Product
	shown      []model.Product
	selected   model.ID
	loading    bool
	failed     bool
}

// NewCatalogView starts filtered to initial when it is non-empty.
func NewCatalogView(ctx context.Context, catalog Catalog, log zerolog.Logger, initial model.ID) *CatalogView {
	return &CatalogView{
		lifetime:   newLifetime(ctx),
		catalog:    catalog,
		log:        log.With().Str("view", "catalog").Logger(),
		categories: []model.Category{},
		raw:        []model.Product{},
		shown:      []model.Product{},
		selected:   model.ParseID(initial.String()),
	}
}

func (v *CatalogView) Load(ctx context.Context) error {
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	fctx := detach(ctx)
	var (
		cats            []model.Category
		products        []model.Product
		catErr, prodErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		cats, catErr = v.catalog.ListCategories(fctx)
		return nil
	})
	g.Go(func() error {
		products, prodErr = v.catalog.ListNewest(fctx, CatalogFetchLimit)
		return nil
	})
	_ = g.Wait()

	if v.closed() {
		v.mu.Lock()
		v.loading = false
		v.mu.Unlock()
		return ErrClosed
	}
	if cats == nil {
		cats = []model.Category{}
	}
	if products == nil {
		products = []model.Product{}
	}

	v.mu.Lock()
	v.categories = cats
	v.raw = products
	v.loading = false
	v.failed = catErr != nil || prodErr != nil
	v.shown = filterByCategory(v.raw, v.selected)
	v.mu.Unlock()

	logger.WithContext(ctx, v.log).Debug().
		Int("categories", len(cats)).
		Int("products", len(products)).
		Msg("catalog loaded")
	return nil
}

// SelectCategory filters to id. Selecting the active category clears the
// filter and restores the full list.
func (v *CatalogView) SelectCategory(id model.ID) {
	id = model.ParseID(id.String())

	v.mu.Lock()
	defer v.mu.Unlock()
	if id.IsZero() || id == v.selected {
		v.selected = ""
	} else {
		v.selected = id
	}
	v.shown = filterByCategory(v.raw, v.selected)
}

func (v *CatalogView) SelectAll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = ""
	v.shown = v.raw
}

func (v *CatalogView) State() CatalogState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return CatalogState{
		Categories: v.categories,
		Selected:   v.selected,
		Products:   v.shown,
		Total:      len(v.raw),
		Loading:    v.loading,
		Failed:     v.failed,
	}
}

func filterByCategory(products []model.Product, id model.ID) []model.Product {
	if id.IsZero() {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.InCategory(id) {
			out = append(out, p)
		}
	}
	return out
}
