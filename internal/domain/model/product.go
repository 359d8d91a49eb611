package model

import "time"

type Product struct {
	ID          ID        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Price       int64     `gorm:"not null" json:"price"`
	ImageURL    string    `gorm:"type:text" json:"image_url"`
	Rating      *float64  `json:"rating"`
	CategoryID  ID        `gorm:"type:varchar(64);index" json:"category_id"`
	Description *string   `gorm:"type:text" json:"description"`
	Ingredients []string  `gorm:"type:jsonb;serializer:json" json:"ingredients"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

// 評価なしは0として扱う（並び替え用）
func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// カテゴリ一致（IDは正規化済みなので文字列比較でよい）
func (p Product) InCategory(categoryID ID) bool {
	return p.CategoryID == ParseID(string(categoryID))
}
