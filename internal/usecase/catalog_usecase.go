package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"glow/internal/domain/model"
	repo "glow/internal/repository"
)

const (
	DefaultLimit       = 10
	DefaultSearchLimit = 50
	DefaultListLimit   = 100
	MaxLimit           = 100
)

// limitが不正・未指定ならdefを使い、上限はMaxLimit
func NormalizeLimit(limit int, def int) int {
	if limit < 1 {
		return def
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// カテゴリと商品の読み取り（DBクエリへの素通し）
type CatalogUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewCatalogUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.ListByName(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}

// GET /api/products の入力DTO
type ListProductsInput struct {
	Q          string
	CategoryID model.ID
	Limit      int
	Offset     int
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "offset must be >= 0")
	}
	return u.list(ctx, repo.ProductListQuery{
		Q:          strings.TrimSpace(in.Q),
		CategoryID: in.CategoryID,
		Order:      repo.OrderNewest,
		Limit:      NormalizeLimit(in.Limit, DefaultListLimit),
		Offset:     in.Offset,
	})
}

func (u *CatalogUsecase) ListNewest(ctx context.Context, limit int) ([]model.Product, error) {
	return u.list(ctx, repo.ProductListQuery{Order: repo.OrderNewest, Limit: NormalizeLimit(limit, DefaultLimit)})
}

func (u *CatalogUsecase) ListBest(ctx context.Context, limit int) ([]model.Product, error) {
	return u.list(ctx, repo.ProductListQuery{Order: repo.OrderBestRated, Limit: NormalizeLimit(limit, DefaultLimit)})
}

// 並びはid昇順（おすすめロジックは未実装のプレースホルダ）
func (u *CatalogUsecase) ListRecommended(ctx context.Context, limit int) ([]model.Product, error) {
	return u.list(ctx, repo.ProductListQuery{Order: repo.OrderRecommended, Limit: NormalizeLimit(limit, DefaultLimit)})
}

// 名前の部分一致。空のqは全件にマッチする（サーバー側は元の挙動のまま）
func (u *CatalogUsecase) Search(ctx context.Context, q string, limit int) ([]model.Product, error) {
	if len(q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	return u.list(ctx, repo.ProductListQuery{
		Q:     strings.TrimSpace(q),
		Order: repo.OrderNewest,
		Limit: NormalizeLimit(limit, DefaultSearchLimit),
	})
}

// 見つからない場合は (nil, nil)
func (u *CatalogUsecase) GetProduct(ctx context.Context, id model.ID) (*model.Product, error) {
	if id.IsZero() {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(err)
	}
	return &p, nil
}

func (u *CatalogUsecase) list(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx, q)
	if err != nil {
		return nil, dbError(err)
	}
	return items, nil
}
