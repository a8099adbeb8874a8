package model

import "time"

// アップロード済みメディアのレコード。実体はS3に置く。
type Media struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType string    `gorm:"type:varchar(100);not null" json:"content_type"`
	ObjectKey   string    `gorm:"type:varchar(512);not null;uniqueIndex" json:"object_key"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
