package model

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// 商品レビュー。クライアントからは作成のみ（更新・削除なし）。
type Review struct {
	ID        ID        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProductID ID        `gorm:"type:varchar(64);not null;index" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Review    string    `gorm:"type:text;not null" json:"review"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func ValidReviewRating(r int) bool {
	return r >= MinReviewRating && r <= MaxReviewRating
}
