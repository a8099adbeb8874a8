package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return []model.WishlistItem{}, err
	}
	return items, nil
}

// 既にあれば何もしない
func (r *WishlistGormRepository) Add(ctx context.Context, userID string, productID string) error {
	var existing model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error

	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := model.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
	}
	return r.db.WithContext(ctx).Create(&item).Error
}

func (r *WishlistGormRepository) Remove(ctx context.Context, userID string, productID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 購入済み商品の行だけ削除。関係ない行は残す。
func (r *WishlistGormRepository) RemoveByUserAndProducts(ctx context.Context, userID string, productIDs []string) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&model.WishlistItem{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
