// Package catalog exposes typed read operations over the REST proxy.
//
// Every operation fails soft: a transport failure is logged and turned into an
// empty result together with ErrUnavailable, so screens can show an empty
// state (and optionally flag the section) without ever seeing the raw
// transport error. "Not found" is not an error: single-item lookups return nil.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"glow/internal/client/gateway"
	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

const (
	DefaultLimit       = 10
	DefaultSearchLimit = 50
)

var (
	ErrUnavailable   = errors.New("catalog: backend unavailable")
	ErrInvalidReview = errors.New("catalog: rating must be 1-5 and review text is required")
)

// Requester is the subset of the gateway the service needs.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
}

type Service struct {
	gw  Requester
	log zerolog.Logger
}

func NewService(gw Requester, log zerolog.Logger) *Service {
	return &Service{gw: gw, log: log.With().Str("component", "catalog").Logger()}
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	return list[model.Category](ctx, s, "/api/categories", nil)
}

func (s *Service) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	return list[model.Product](ctx, s, "/api/products/new", limitQuery(limit, DefaultLimit))
}

func (s *Service) ListBest(ctx context.Context, limit int) ([]model.Product, error) {
	return list[model.Product](ctx, s, "/api/products/best", limitQuery(limit, DefaultLimit))
}

func (s *Service) ListRecommended(ctx context.Context, limit int) ([]model.Product, error) {
	return list[model.Product](ctx, s, "/api/products/recommended", limitQuery(limit, DefaultLimit))
}

// Search matches name substrings case-insensitively. A blank query returns an
// empty result without touching the network.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]model.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []model.Product{}, nil
	}
	params := limitQuery(limit, DefaultSearchLimit)
	params.Set("q", q)
	return list[model.Product](ctx, s, "/api/products/search", params)
}

func (s *Service) GetProduct(ctx context.Context, id model.ID) (*model.Product, error) {
	if id.IsZero() {
		return nil, nil
	}
	return one[model.Product](ctx, s, "/api/products/"+url.PathEscape(id.String()))
}

func (s *Service) ListReviews(ctx context.Context, productID model.ID) ([]model.Review, error) {
	var q url.Values
	if !productID.IsZero() {
		q = url.Values{"product_id": {productID.String()}}
	}
	return list[model.Review](ctx, s, "/api/reviews", q)
}

// SubmitReview validates locally and only then posts.
func (s *Service) SubmitReview(ctx context.Context, productID model.ID, rating int, text string) (*model.Review, error) {
	text = strings.TrimSpace(text)
	if productID.IsZero() || !model.ValidReviewRating(rating) || text == "" {
		return nil, ErrInvalidReview
	}

	body := map[string]any{
		"product_id": productID,
		"rating":     rating,
		"review":     text,
	}
	raw, err := s.gw.Post(ctx, "/api/reviews", body)
	if err != nil {
		s.fail(ctx, "/api/reviews", err)
		return nil, ErrUnavailable
	}
	rv, err := decodeOne[model.Review](raw)
	if err != nil {
		s.fail(ctx, "/api/reviews", err)
		return nil, ErrUnavailable
	}
	return rv, nil
}

func list[T any](ctx context.Context, s *Service, path string, q url.Values) ([]T, error) {
	raw, err := s.gw.Get(ctx, path, q)
	if err != nil {
		s.fail(ctx, path, err)
		return []T{}, ErrUnavailable
	}

	out := []T{}
	if isNull(raw) {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		s.fail(ctx, path, err)
		return []T{}, ErrUnavailable
	}
	return out, nil
}

func one[T any](ctx context.Context, s *Service, path string) (*T, error) {
	raw, err := s.gw.Get(ctx, path, nil)
	if err != nil {
		s.fail(ctx, path, err)
		return nil, ErrUnavailable
	}
	v, err := decodeOne[T](raw)
	if err != nil {
		s.fail(ctx, path, err)
		return nil, ErrUnavailable
	}
	return v, nil
}

func decodeOne[T any](raw json.RawMessage) (*T, error) {
	if isNull(raw) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Service) fail(ctx context.Context, path string, err error) {
	ev := logger.WithContext(ctx, s.log).Warn().Err(err).Str("path", path)
	if te, ok := gateway.AsTransportError(err); ok && te.Status > 0 {
		ev = ev.Int("status", te.Status)
	}
	ev.Msg("catalog request failed")
}

func limitQuery(limit, def int) url.Values {
	if limit <= 0 {
		limit = def
	}
	return url.Values{"limit": {strconv.Itoa(limit)}}
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
