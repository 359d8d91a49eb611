package screen

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"glow/internal/client/favorites"
	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

type ProductState struct {
	Product  *model.Product
	Reviews  Section[model.Review]
	Found    bool
	Loading  bool
	Failed   bool
	Favorite favorites.State
}

type ProductView struct {
	*lifetime
	id      model.ID
	catalog Catalog
	favs    Favorites
	log     zerolog.Logger

	mu      sync.RWMutex
	product *model.Product
	reviews Section[model.Review]
	loading bool
	failed  bool
}

func NewProductView(ctx context.Context, catalog Catalog, favs Favorites, log zerolog.Logger, id model.ID) *ProductView {
	id = model.ParseID(id.String())
	return &ProductView{
		lifetime: newLifetime(ctx),
		id:       id,
		catalog:  catalog,
		favs:     favs,
		log:      log.With().Str("view", "product").Str("product_id", id.String()).Logger(),
		reviews:  Section[model.Review]{Items: []model.Review{}},
	}
}

func (v *ProductView) Load(ctx context.Context) error {
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	v.loading = true
	v.reviews.Loading = true
	v.mu.Unlock()

	fctx := detach(ctx)
	var (
		product *model.Product
		prodErr error
		reviews Section[model.Review]
	)
	var g errgroup.Group
	g.Go(func() error {
		product, prodErr = v.catalog.GetProduct(fctx, v.id)
		return nil
	})
	g.Go(func() error {
		items, err := v.catalog.ListReviews(fctx, v.id)
		reviews = loaded(items, err)
		return nil
	})
	_ = g.Wait()

	if v.closed() {
		v.mu.Lock()
		v.loading = false
		v.reviews.Loading = false
		v.mu.Unlock()
		return ErrClosed
	}

	v.mu.Lock()
	v.product = product
	v.reviews = reviews
	v.loading = false
	v.failed = prodErr != nil
	v.mu.Unlock()
	return nil
}

// ToggleFavorite flips the product in the shared favorites store. The store
// outlives the view, so the mutation is not tied to Close.
func (v *ProductView) ToggleFavorite(ctx context.Context) error {
	if v.id.IsZero() {
		return nil
	}
	return v.favs.Toggle(detach(ctx), v.id)
}

// SubmitReview posts a review and reloads the review list on success.
func (v *ProductView) SubmitReview(ctx context.Context, rating int, text string) error {
	if v.closed() {
		return ErrClosed
	}
	fctx := detach(ctx)
	if _, err := v.catalog.SubmitReview(fctx, v.id, rating, text); err != nil {
		return err
	}

	items, err := v.catalog.ListReviews(fctx, v.id)
	reviews := loaded(items, err)
	if v.closed() {
		return ErrClosed
	}
	v.mu.Lock()
	v.reviews = reviews
	v.mu.Unlock()

	logger.WithContext(ctx, v.log).Debug().Int("rating", rating).Msg("review submitted")
	return nil
}

func (v *ProductView) State() ProductState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ProductState{
		Product:  v.product,
		Reviews:  v.reviews,
		Found:    v.product != nil,
		Loading:  v.loading,
		Failed:   v.failed,
		Favorite: v.favs.State(v.id),
	}
}
