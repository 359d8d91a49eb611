package model

import "time"

// 認証がないので全セッション共通のゲストユーザーを使う。
const GuestUser = "guest"

// (user_name, product_id) は一意。
type Favorite struct {
	ID        ID        `gorm:"primaryKey;type:varchar(64)" json:"id"`
	UserName  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorites_user_product" json:"user_name"`
	ProductID ID        `gorm:"type:varchar(64);not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
