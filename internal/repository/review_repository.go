package repository

import (
	"context"

	"glow/internal/domain/model"
)

// レビューの保存・一覧取得の約束。
type ReviewRepository interface {
	//productIDが空なら全件（created_at desc）
	List(ctx context.Context, productID model.ID) ([]model.Review, error)

	Create(ctx context.Context, r model.Review) (model.Review, error)
}
