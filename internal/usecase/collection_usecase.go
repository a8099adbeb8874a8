package usecase

import (
	"context"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type CollectionUsecase struct {
	collectionRepo repo.CollectionRepository
	productRepo    repo.ProductRepository
}

// DI
func NewCollectionUsecase(collectionRepo repo.CollectionRepository, productRepo repo.ProductRepository) *CollectionUsecase {
	return &CollectionUsecase{
		collectionRepo: collectionRepo,
		productRepo:    productRepo,
	}
}

type CollectionDetailOutput struct {
	Collection model.Collection `json:"collection"`
	Products   []model.Product  `json:"products"`
	Total      int64            `json:"total"`
}

func (u *CollectionUsecase) ListCollections(ctx context.Context) ([]model.Collection, error) {
	items, err := u.collectionRepo.List(ctx)
	if err != nil {
		return []model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// slugでコレクションと所属商品を返す
func (u *CollectionUsecase) GetCollectionBySlug(ctx context.Context, slug string, page int, limit int) (CollectionDetailOutput, error) {
	if slug == "" {
		return CollectionDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid slug")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	col, err := u.collectionRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return CollectionDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CollectionDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:         page,
		Limit:        limit,
		CollectionID: col.ID,
	})
	if err != nil {
		return CollectionDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CollectionDetailOutput{
		Collection: col,
		Products:   products,
		Total:      total,
	}, nil
}
