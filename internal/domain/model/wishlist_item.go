package model

import "time"

// お気に入り。user × product で1行。
type WishlistItem struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
