package usecase

import (
	"context"
	"net/http"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
)

type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	productRepo  repo.ProductRepository
}

// DI
func NewWishlistUsecase(wishlistRepo repo.WishlistRepository, productRepo repo.ProductRepository) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

type WishlistResponse struct {
	Items []model.Product `json:"items"`
}

func (u *WishlistUsecase) GetWishlist(ctx context.Context, userID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlistRepo.ListByUserID(ctx, userID)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WishlistResponse{Items: products}, nil
}

// 追加は冪等（既にあっても200）
func (u *WishlistUsecase) Add(ctx context.Context, userID string, productID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	_, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetWishlist(ctx, userID)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID string, productID string) (WishlistResponse, error) {
	if userID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return WishlistResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	err := u.wishlistRepo.Remove(ctx, userID, productID)
	if err == repo.ErrNotFound {
		return WishlistResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return WishlistResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetWishlist(ctx, userID)
}
