package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type MediaGormRepository struct {
	db *gorm.DB
}

// DI
func NewMediaGormRepository(db *gorm.DB) *MediaGormRepository {
	return &MediaGormRepository{db: db}
}

func (r *MediaGormRepository) Create(ctx context.Context, media model.Media) error {
	return r.db.WithContext(ctx).Create(&media).Error
}

func (r *MediaGormRepository) FindByID(ctx context.Context, mediaID string) (model.Media, error) {
	var m model.Media
	err := r.db.WithContext(ctx).Where("id = ?", mediaID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Media{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Media{}, err
	}
	return m, nil
}

func (r *MediaGormRepository) Delete(ctx context.Context, mediaID string) error {
	res := r.db.WithContext(ctx).Where("id = ?", mediaID).Delete(&model.Media{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
