package model

import "time"

// 商品。priceは通貨ずれ防止のため文字列のdecimalで保持する。
type Product struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        string    `gorm:"type:numeric(12,2);not null" json:"price"`
	ImagePath    string    `gorm:"type:text" json:"image_path"`
	CollectionID string    `gorm:"type:uuid;index" json:"collection_id"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
