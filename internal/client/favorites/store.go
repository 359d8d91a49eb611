// Package favorites holds the active user's favorited product set.
//
// Mutations are optimistic: the local set changes before the backend call is
// made, so every screen reading the store sees the new state at once. A failed
// backend call rolls the change back, for Add and Remove alike, unless a newer
// mutation of the same product happened in the meantime. Concurrent mutations
// of one product are not serialized; the local set follows the last one made
// and the periodic reconcile (Load) converges it with the server.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

var ErrClosed = errors.New("favorites: store closed")

type State int

const (
	NotFavorited State = iota
	Favorited
	Pending
)

func (s State) String() string {
	switch s {
	case Favorited:
		return "favorited"
	case Pending:
		return "pending"
	default:
		return "not-favorited"
	}
}

// Backend persists favorite entries for one user identity.
type Backend interface {
	List(ctx context.Context, user string) ([]model.ID, error)
	Add(ctx context.Context, user string, id model.ID) error
	Remove(ctx context.Context, user string, id model.ID) error
}

type Option func(*Store)

// WithReconcile schedules a full Load on the given cron spec ("@every 5m").
func WithReconcile(spec string) Option {
	return func(s *Store) { s.reconcileSpec = spec }
}

// WithLoadTimeout bounds background reconcile loads.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) { s.loadTimeout = d }
}

type Store struct {
	backend Backend
	user    string
	log     zerolog.Logger

	reconcileSpec string
	loadTimeout   time.Duration
	cron          *cron.Cron

	mu      sync.RWMutex
	set     map[model.ID]struct{}
	pending map[model.ID]int
	gen     map[model.ID]uint64
	loaded  bool
	closed  bool

	subMu      sync.Mutex
	subs       map[int]chan struct{}
	nextSub    int
	subsClosed bool
}

func NewStore(backend Backend, user string, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		user:        user,
		log:         log.With().Str("component", "favorites").Str("user", user).Logger(),
		loadTimeout: 30 * time.Second,
		set:         map[model.ID]struct{}{},
		pending:     map[model.ID]int{},
		gen:         map[model.ID]uint64{},
		subs:        map[int]chan struct{}{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start performs the initial Load and starts the reconcile schedule, if any.
// A failed initial load leaves the set empty.
func (s *Store) Start(ctx context.Context) error {
	_ = s.Load(ctx)

	if s.reconcileSpec == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(s.reconcileSpec, s.reconcile); err != nil {
		return fmt.Errorf("favorites reconcile spec %q: %w", s.reconcileSpec, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.cron = c
	s.mu.Unlock()

	c.Start()
	return nil
}

// Close stops the reconcile schedule and releases subscribers. The set stays
// readable; mutations after Close return ErrClosed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}

	s.subMu.Lock()
	s.subsClosed = true
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()
}

// Load replaces the set with the server's entries. Products with a mutation
// still in flight keep their local state. On failure the set is unchanged.
func (s *Store) Load(ctx context.Context) error {
	ids, err := s.backend.List(ctx, s.user)
	if err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).Msg("load favorites failed")
		return err
	}

	next := make(map[model.ID]struct{}, len(ids))
	for _, id := range ids {
		next[model.ParseID(id.String())] = struct{}{}
	}

	s.mu.Lock()
	for id, n := range s.pending {
		if n == 0 {
			continue
		}
		if _, ok := s.set[id]; ok {
			next[id] = struct{}{}
		} else {
			delete(next, id)
		}
	}
	s.set = next
	s.loaded = true
	s.mu.Unlock()

	s.notify()
	return nil
}

// Add favorites id. It is a no-op when id is already in the set, including
// while an earlier Add for it is still in flight.
func (s *Store) Add(ctx context.Context, id model.ID) error {
	id = model.ParseID(id.String())
	if id.IsZero() {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.set[id]; ok {
		s.mu.Unlock()
		return nil
	}
	s.set[id] = struct{}{}
	g := s.begin(id)
	s.mu.Unlock()
	s.notify()

	err := s.backend.Add(ctx, s.user, id)

	s.mu.Lock()
	rolledBack := false
	if err != nil && s.gen[id] == g {
		delete(s.set, id)
		rolledBack = true
	}
	s.end(id)
	s.mu.Unlock()
	s.notify()

	if err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).
			Str("product_id", id.String()).
			Bool("rolled_back", rolledBack).
			Msg("add favorite failed")
		return err
	}
	return nil
}

// Remove unfavorites id. It is a no-op when id is not in the set.
func (s *Store) Remove(ctx context.Context, id model.ID) error {
	id = model.ParseID(id.String())
	if id.IsZero() {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.set[id]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.set, id)
	g := s.begin(id)
	s.mu.Unlock()
	s.notify()

	err := s.backend.Remove(ctx, s.user, id)

	s.mu.Lock()
	rolledBack := false
	if err != nil && s.gen[id] == g {
		s.set[id] = struct{}{}
		rolledBack = true
	}
	s.end(id)
	s.mu.Unlock()
	s.notify()

	if err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).
			Str("product_id", id.String()).
			Bool("rolled_back", rolledBack).
			Msg("remove favorite failed")
		return err
	}
	return nil
}

// Toggle adds id when absent and removes it otherwise.
func (s *Store) Toggle(ctx context.Context, id model.ID) error {
	if s.Has(id) {
		return s.Remove(ctx, id)
	}
	return s.Add(ctx, id)
}

func (s *Store) Has(id model.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[model.ParseID(id.String())]
	return ok
}

func (s *Store) State(id model.ID) State {
	id = model.ParseID(id.String())

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pending[id] > 0 {
		return Pending
	}
	if _, ok := s.set[id]; ok {
		return Favorited
	}
	return NotFavorited
}

// IDs returns a sorted snapshot of the set.
func (s *Store) IDs() []model.ID {
	s.mu.RLock()
	out := make([]model.ID, 0, len(s.set))
	for id := range s.set {
		out = append(out, id)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.set)
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Store) User() string {
	return s.user
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce; the channel is closed by Close or by the returned cancel.
// After Close the returned channel is already closed.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	if s.subsClosed {
		s.subMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// s.mu must be held.
func (s *Store) begin(id model.ID) uint64 {
	s.gen[id]++
	s.pending[id]++
	return s.gen[id]
}

// s.mu must be held.
func (s *Store) end(id model.ID) {
	s.pending[id]--
	if s.pending[id] <= 0 {
		delete(s.pending, id)
	}
}

func (s *Store) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
	defer cancel()
	if err := s.Load(ctx); err == nil {
		s.log.Debug().Int("count", s.Len()).Msg("favorites reconciled")
	}
}
