package repository

import (
	"context"

	"glow/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) ListByName(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return []model.Category{}, err
	}
	return categories, nil
}
