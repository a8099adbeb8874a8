package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page         int
	Limit        int
	Q            string
	CollectionID string
	Sort         string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	// 指定IDの商品をIN句1回でまとめて取得する。N回の単発lookupはしない。
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}
