package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"glow/internal/domain/model"
)

func ptr[T any](v T) *T { return &v }

// SeedDemo は空のDBにデモ用のカテゴリと商品を入れる。
// 既に商品がある場合は何もしない。
func SeedDemo(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var count int64
	if err := gdb.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	categories := []model.Category{
		{ID: "1", Name: "Cleanser"},
		{ID: "2", Name: "Serum"},
		{ID: "3", Name: "Moisturizer"},
		{ID: "4", Name: "Sunscreen"},
	}

	now := time.Now()
	products := []model.Product{
		{
			ID: "1", Name: "AHA BHA PHA Exfoliating Pads", Price: 135000, CategoryID: "1",
			Rating: ptr(4.6), Description: ptr("Eksfoliasi lembut"),
			Ingredients: []string{"Glycolic Acid", "Salicylic Acid", "Gluconolactone"},
			CreatedAt:   now.Add(-72 * time.Hour),
		},
		{
			ID: "2", Name: "10% Vitamin C Serum", Price: 135000, CategoryID: "2",
			Rating: ptr(4.8), Description: ptr("Mencerahkan"),
			Ingredients: []string{"Ascorbic Acid", "Ferulic Acid"},
			CreatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID: "3", Name: "Gentle Low pH Cleanser", Price: 89000, CategoryID: "1",
			Rating: ptr(4.3), Ingredients: []string{"Centella Asiatica"},
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID: "4", Name: "Ceramide Barrier Moisturizer", Price: 120000, CategoryID: "3",
			CreatedAt: now.Add(-12 * time.Hour),
		},
		{
			ID: "5", Name: "Aqua Sunscreen SPF 50", Price: 99000, CategoryID: "4",
			Rating: ptr(4.5), CreatedAt: now,
		},
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed demo data: %w", err)
	}
	return true, nil
}
