package validator

import (
	"encoding/json"
	"errors"
)

// 入力が不正
var ErrInvalidOrderFormat = errors.New("invalid order format")

// 生のJSONを受けるための型。欠落と型違いを区別するためpointerで受ける。
type orderProductPayload struct {
	Quantity *int64 `json:"quantity"`
}

type orderPayload struct {
	OrderProducts map[string]orderProductPayload `json:"orderProducts"`
	Guest         *bool                          `json:"guest"`
}

// 検証済みの注文ペイロード。quantityは必ず1以上。
type CreateOrderPayload struct {
	Quantities map[string]int64
	Guest      bool
}

// ValidateCreateOrder は注文ペイロードの形を検証する。
// 失敗したら副作用ゼロのままErrInvalidOrderFormatを返す。
func ValidateCreateOrder(body []byte) (CreateOrderPayload, error) {
	var p orderPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return CreateOrderPayload{}, ErrInvalidOrderFormat
	}

	// orderProductsとguestは必須
	if p.OrderProducts == nil || p.Guest == nil {
		return CreateOrderPayload{}, ErrInvalidOrderFormat
	}

	quantities := make(map[string]int64, len(p.OrderProducts))
	for productID, op := range p.OrderProducts {
		if op.Quantity == nil || *op.Quantity < 1 {
			return CreateOrderPayload{}, ErrInvalidOrderFormat
		}
		quantities[productID] = *op.Quantity
	}

	return CreateOrderPayload{
		Quantities: quantities,
		Guest:      *p.Guest,
	}, nil
}
