package usecase

import (
	"context"
	"net/http"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestWishlistUsecase_GetWishlist(t *testing.T) {
	ctx := context.Background()
	wishlistRepo := new(MockWishlistRepository)
	productRepo := new(MockProductRepository)

	wishlistRepo.On("ListByUserID", mock.Anything, "user-1").Return([]model.WishlistItem{
		{UserID: "user-1", ProductID: "p1"},
	}, nil)
	productRepo.On("FindByIDs", mock.Anything, idsMatching("p1")).Return([]model.Product{
		{ID: "p1", Name: "Oak Table", Price: "100.00"},
	}, nil)

	u := NewWishlistUsecase(wishlistRepo, productRepo)

	out, err := u.GetWishlist(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

func TestWishlistUsecase_Add_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	wishlistRepo := new(MockWishlistRepository)
	productRepo := new(MockProductRepository)

	productRepo.On("FindByID", mock.Anything, "ghost").Return(model.Product{}, repo.ErrNotFound)

	u := NewWishlistUsecase(wishlistRepo, productRepo)

	_, err := u.Add(ctx, "user-1", "ghost")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	wishlistRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestWishlistUsecase_RequiresUser(t *testing.T) {
	ctx := context.Background()
	u := NewWishlistUsecase(new(MockWishlistRepository), new(MockProductRepository))

	_, err := u.GetWishlist(ctx, "")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}
