package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

const SearchLimit = 50

type SearchState struct {
	Query    string
	Results  []model.Product
	Searched bool
	Failed   bool
	History  []string
}

type SearchView struct {
	*lifetime
	catalog Catalog
	history History
	log     zerolog.Logger

	mu    sync.RWMutex
	state SearchState
}

func NewSearchView(ctx context.Context, catalog Catalog, history History, log zerolog.Logger) *SearchView {
	return &SearchView{
		lifetime: newLifetime(ctx),
		catalog:  catalog,
		history:  history,
		log:      log.With().Str("view", "search").Logger(),
		state:    SearchState{Results: []model.Product{}},
	}
}

// Submit records q in the history, then searches. A blank query clears the
// results without a request.
func (v *SearchView) Submit(ctx context.Context, q string) error {
	if v.closed() {
		return ErrClosed
	}
	q = strings.TrimSpace(q)
	if q == "" {
		v.mu.Lock()
		v.state = SearchState{Results: []model.Product{}}
		v.mu.Unlock()
		return nil
	}

	fctx := detach(ctx)
	// 履歴の保存失敗で検索は止めない
	if err := v.history.Record(fctx, q); err != nil {
		logger.WithContext(ctx, v.log).Warn().Err(err).Msg("record search history failed")
	}

	results, err := v.catalog.Search(fctx, q, SearchLimit)
	if v.closed() {
		return ErrClosed
	}
	if results == nil {
		results = []model.Product{}
	}

	v.mu.Lock()
	v.state = SearchState{Query: q, Results: results, Searched: true, Failed: err != nil}
	v.mu.Unlock()
	return nil
}

func (v *SearchView) Clear(ctx context.Context) error {
	return v.history.Clear(detach(ctx))
}

func (v *SearchView) History() []string {
	return v.history.Entries()
}

func (v *SearchView) State() SearchState {
	v.mu.RLock()
	s := v.state
	v.mu.RUnlock()
	s.History = v.history.Entries()
	return s
}
