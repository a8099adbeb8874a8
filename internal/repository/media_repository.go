package repository

import (
	"context"

	"shop/internal/domain/model"
)

type MediaRepository interface {
	Create(ctx context.Context, media model.Media) error
	FindByID(ctx context.Context, mediaID string) (model.Media, error)
	Delete(ctx context.Context, mediaID string) error
}
