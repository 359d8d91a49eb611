package repository

import (
	"context"
	"errors"
	"strings"

	"glow/internal/domain/model"
	repo "glow/internal/repository"

	"gorm.io/gorm"
)

// IDはvarcharなので、数値IDが 1,2,...,10 の順になるよう桁数→文字列で並べる
const idAsc = "length(id) asc, id asc"

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 検索/カテゴリ/並び順/offset,limit 付きで返す。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	products := []model.Product{}

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	// q nameを対象（大文字小文字を区別しない部分一致）
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("name ILIKE ?", "%"+s+"%")
	}
	if !q.CategoryID.IsZero() {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}

	//sort
	switch q.Order {
	case repo.OrderBestRated:
		tx = tx.Order("rating desc nulls last").Order(idAsc)
	case repo.OrderRecommended:
		tx = tx.Order(idAsc)
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id model.ID) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}
