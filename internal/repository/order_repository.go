package repository

import (
	"context"

	"shop/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error)
}

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderLine, error)
}
