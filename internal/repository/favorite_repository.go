package repository

import (
	"context"

	"glow/internal/domain/model"
)

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userName string) ([]model.Favorite, error)

	//同じ(user, product)が既にあれば何もしない
	Add(ctx context.Context, f model.Favorite) (model.Favorite, error)

	Remove(ctx context.Context, userName string, productID model.ID) error
}
