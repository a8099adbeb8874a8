package model

import "time"

// リフレッシュトークン。平文は保存せずsha256ハッシュのみ持つ。
type RefreshToken struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null;index"`
	TokenHash string `gorm:"type:varchar(64);not null;uniqueIndex"`
	UserAgent string `gorm:"type:varchar(255)"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	RevokedAt *time.Time
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}
