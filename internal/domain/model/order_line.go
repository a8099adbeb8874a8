package model

import "time"

// 注文明細。priceは注文時点の単価スナップショット。
// 後からカタログ価格が変わっても書き換えない。
type OrderLine struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string    `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Price     string    `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
