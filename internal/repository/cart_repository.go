package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CartRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error)
	// 同一商品はプラス
	Upsert(ctx context.Context, userID string, productID string, addQty int64) error
	UpdateQuantity(ctx context.Context, userID string, productID string, qty int64) error
	Delete(ctx context.Context, userID string, productID string) error
	// 購入済みかどうかに関係なくユーザーの明細を全削除。削除件数を返す。
	ClearByUserID(ctx context.Context, userID string) (int64, error)
}
