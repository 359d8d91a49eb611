// Package screen turns catalog, favorites and history data into view state.
//
// Every view owns a lifetime context that Close cancels. Fetches run detached
// from that lifetime so an in-flight request completes normally, but results
// that arrive after Close are dropped and the call reports ErrClosed.
package screen

import (
	"context"
	"errors"
	"sync"

	"glow/internal/client/favorites"
	"glow/internal/domain/model"
)

var ErrClosed = errors.New("screen: view closed")

// Catalog is the read/write surface of catalog.Service used by views.
type Catalog interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListNewest(ctx context.Context, limit int) ([]model.Product, error)
	ListBest(ctx context.Context, limit int) ([]model.Product, error)
	ListRecommended(ctx context.Context, limit int) ([]model.Product, error)
	Search(ctx context.Context, query string, limit int) ([]model.Product, error)
	GetProduct(ctx context.Context, id model.ID) (*model.Product, error)
	ListReviews(ctx context.Context, productID model.ID) ([]model.Review, error)
	SubmitReview(ctx context.Context, productID model.ID, rating int, text string) (*model.Review, error)
}

type Favorites interface {
	Has(id model.ID) bool
	State(id model.ID) favorites.State
	Toggle(ctx context.Context, id model.ID) error
	IDs() []model.ID
	Len() int
	User() string
}

type History interface {
	Record(ctx context.Context, q string) error
	Clear(ctx context.Context) error
	Entries() []string
	Len() int
}

// Section is one independently loaded list on a screen.
type Section[T any] struct {
	Items   []T
	Loading bool
	Failed  bool
}

func loaded[T any](items []T, err error) Section[T] {
	if items == nil {
		items = []T{}
	}
	return Section[T]{Items: items, Failed: err != nil}
}

type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func newLifetime(parent context.Context) *lifetime {
	ctx, cancel := context.WithCancel(parent)
	return &lifetime{ctx: ctx, cancel: cancel}
}

// Close ends the view; later results are discarded.
func (l *lifetime) Close() {
	l.once.Do(l.cancel)
}

func (l *lifetime) closed() bool {
	return l.ctx.Err() != nil
}

// detach keeps ctx values but drops its cancellation and deadline.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
