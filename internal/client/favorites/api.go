package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"glow/internal/domain/model"
)

// Requester is the subset of the gateway the API backend needs.
type Requester interface {
	Get(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
}

// API persists favorites through the REST proxy.
type API struct {
	gw Requester
}

func NewAPI(gw Requester) *API {
	return &API{gw: gw}
}

func (a *API) List(ctx context.Context, user string) ([]model.ID, error) {
	raw, err := a.gw.Get(ctx, "/api/favorites", url.Values{"user": {user}})
	if err != nil {
		return nil, err
	}

	var rows []model.Favorite
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, fmt.Errorf("decode favorites: %w", err)
		}
	}

	ids := make([]model.ID, 0, len(rows))
	for _, r := range rows {
		if !r.ProductID.IsZero() {
			ids = append(ids, r.ProductID)
		}
	}
	return ids, nil
}

func (a *API) Add(ctx context.Context, user string, id model.ID) error {
	_, err := a.gw.Post(ctx, "/api/favorites", map[string]any{
		"user_name":  user,
		"product_id": id,
	})
	return err
}

func (a *API) Remove(ctx context.Context, user string, id model.ID) error {
	_, err := a.gw.Delete(ctx, "/api/favorites/"+url.PathEscape(id.String()), url.Values{"user": {user}})
	return err
}
