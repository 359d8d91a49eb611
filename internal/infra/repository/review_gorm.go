package repository

import (
	"context"

	"glow/internal/domain/model"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

// 新しい順
func (r *ReviewGormRepository) List(ctx context.Context, productID model.ID) ([]model.Review, error) {
	reviews := []model.Review{}

	tx := r.db.WithContext(ctx).Model(&model.Review{})
	if !productID.IsZero() {
		tx = tx.Where("product_id = ?", productID)
	}

	if err := tx.Order("created_at desc").Find(&reviews).Error; err != nil {
		return []model.Review{}, err
	}
	return reviews, nil
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return model.Review{}, err
	}
	return rv, nil
}
