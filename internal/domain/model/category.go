package model

type Category struct {
	ID   ID     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name string `gorm:"type:varchar(255);not null;index" json:"name"`
}
