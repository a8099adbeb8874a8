package model

import "time"

// コレクション（商品カテゴリ）。slugでURLから引く。
type Collection struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImagePath   string    `gorm:"type:text" json:"image_path"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
