package model

import "time"

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusNoPaymentRequired PaymentStatus = "no_payment_required"
)

// 注文。user_idがnilならゲスト注文。
// amountは明細の合計（quantity × 単価スナップショット）と一致する。
type Order struct {
	ID            string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *string       `gorm:"type:uuid;index" json:"user_id"`
	Currency      string        `gorm:"type:varchar(10);not null" json:"currency"`
	Amount        string        `gorm:"type:numeric(12,2);not null" json:"amount"`
	OrderStatus   OrderStatus   `gorm:"type:varchar(20);not null" json:"order_status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(30);not null" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(20);not null" json:"payment_method"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}
