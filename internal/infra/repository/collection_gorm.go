package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

// DI
func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

func (r *CollectionGormRepository) List(ctx context.Context) ([]model.Collection, error) {
	var items []model.Collection
	if err := r.db.WithContext(ctx).Order("title asc").Find(&items).Error; err != nil {
		return []model.Collection{}, err
	}
	return items, nil
}

func (r *CollectionGormRepository) FindBySlug(ctx context.Context, slug string) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}
