package repository

import (
	"context"

	"glow/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListByUser(ctx context.Context, userName string) ([]model.Favorite, error) {
	favs := []model.Favorite{}
	if err := r.db.WithContext(ctx).
		Where("user_name = ?", userName).
		Order("created_at asc").
		Find(&favs).Error; err != nil {
		return []model.Favorite{}, err
	}
	return favs, nil
}

// 既に登録済みなら既存の行を返す
func (r *FavoriteGormRepository) Add(ctx context.Context, f model.Favorite) (model.Favorite, error) {
	var out model.Favorite

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_name"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&f).Error; err != nil {
			return err
		}

		return tx.
			Where("user_name = ? AND product_id = ?", f.UserName, f.ProductID).
			First(&out).Error
	})
	if err != nil {
		return model.Favorite{}, err
	}
	return out, nil
}

// 無くてもエラーにしない（削除は冪等）
func (r *FavoriteGormRepository) Remove(ctx context.Context, userName string, productID model.ID) error {
	return r.db.WithContext(ctx).
		Where("user_name = ? AND product_id = ?", userName, productID).
		Delete(&model.Favorite{}).Error
}
