// Package history persists the most recent distinct search queries.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"glow/internal/pkg/logger"
)

const (
	StorageKey = "search_history"
	MaxEntries = 6
)

type Store struct {
	storage Storage
	log     zerolog.Logger

	writeMu sync.Mutex // Record/Clear の永続化順序を保つ
	mu      sync.RWMutex
	entries []string
}

func NewStore(storage Storage, log zerolog.Logger) *Store {
	return &Store{
		storage: storage,
		log:     log.With().Str("component", "history").Logger(),
		entries: []string{},
	}
}

// Load reads the persisted list. A missing or unreadable payload yields an
// empty list; only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	b, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).Msg("load search history failed")
		s.set([]string{})
		return err
	}

	entries := []string{}
	if ok {
		var raw []string
		if err := json.Unmarshal(b, &raw); err != nil {
			logger.WithContext(ctx, s.log).Warn().Err(err).Msg("discarding corrupt search history")
		} else {
			entries = normalize(raw)
		}
	}
	s.set(entries)
	return nil
}

// Record moves q to the front. The list is persisted before Record returns.
func (s *Store) Record(ctx context.Context, q string) error {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := make([]string, 0, MaxEntries)
	next = append(next, q)
	for _, e := range s.entries {
		if e != q && len(next) < MaxEntries {
			next = append(next, e)
		}
	}
	s.entries = next
	b, err := json.Marshal(next)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode search history: %w", err)
	}

	if err := s.storage.Set(ctx, StorageKey, b); err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).Msg("persist search history failed")
		return err
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.set([]string{})
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		logger.WithContext(ctx, s.log).Warn().Err(err).Msg("clear search history failed")
		return err
	}
	return nil
}

// Entries returns the list, most recent first.
func (s *Store) Entries() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.entries...)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) set(entries []string) {
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

// 保存データが手で書き換えられていても不変条件を満たすようにする
func normalize(raw []string) []string {
	out := make([]string, 0, MaxEntries)
	seen := map[string]bool{}
	for _, e := range raw {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
