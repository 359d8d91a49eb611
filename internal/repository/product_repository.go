package repository

import (
	"context"
	"errors"

	"glow/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の並び順
type ProductOrder string

const (
	OrderNewest      ProductOrder = "newest"      // created_at desc
	OrderBestRated   ProductOrder = "best"        // rating desc
	OrderRecommended ProductOrder = "recommended" // id asc
)

// 一覧検索（offset/limitのみ）
type ProductListQuery struct {
	Q          string
	CategoryID model.ID
	Order      ProductOrder
	Limit      int
	Offset     int
}

// 商品の読み取りだけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id model.ID) (model.Product, error)
}

// カテゴリは名前順
type CategoryRepository interface {
	ListByName(ctx context.Context) ([]model.Category, error)
}
