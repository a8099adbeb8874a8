package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	//名前・説明の部分一致検索
	if q.Q != "" {
		like := "%" + q.Q + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	//コレクション絞り込み
	if q.CollectionID != "" {
		tx = tx.Where("collection_id = ?", q.CollectionID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc")
	case "price_desc":
		tx = tx.Order("price desc")
	default:
		tx = tx.Order("created_at desc")
	}

	var items []model.Product
	offset := (q.Page - 1) * q.Limit
	if err := tx.Limit(q.Limit).Offset(offset).Find(&items).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return items, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// IN句1回のバッチ取得。見つからないIDはエラーにせず結果から抜ける。
func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var items []model.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return []model.Product{}, err
	}

	return items, nil
}
