package repository

import (
	"context"

	"shop/internal/domain/model"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]model.Collection, error)
	FindBySlug(ctx context.Context, slug string) (model.Collection, error)
}
