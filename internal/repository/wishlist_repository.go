package repository

import (
	"context"

	"shop/internal/domain/model"
)

type WishlistRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]model.WishlistItem, error)
	Add(ctx context.Context, userID string, productID string) error
	Remove(ctx context.Context, userID string, productID string) error
	// 指定した商品IDに一致する行だけ削除する。それ以外は残す。削除件数を返す。
	RemoveByUserAndProducts(ctx context.Context, userID string, productIDs []string) (int64, error)
}
