package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo    repo.ProductRepository
	collectionRepo repo.CollectionRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, collectionRepo repo.CollectionRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
	}
}

// GET /api/products の入力DTO
type ListProductsInput struct {
	Page           int
	Limit          int
	Q              string
	CollectionSlug string
	Sort           string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid q")
	}
	switch in.Sort {
	case "", "price_asc", "price_desc", "newest":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	q := repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     in.Q,
		Sort:  in.Sort,
	}

	//slug指定があればコレクションを引いてIDで絞る
	if in.CollectionSlug != "" {
		col, err := u.collectionRepo.FindBySlug(ctx, in.CollectionSlug)
		if err == repo.ErrNotFound {
			return ProductListOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		q.CollectionID = col.ID
	}

	items, total, err := u.productRepo.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, id string) (model.Product, error) {
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}
