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

// =====================
// Mock: CollectionRepository
// =====================

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) List(ctx context.Context) ([]model.Collection, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Collection)
	return cs, args.Error(1)
}

func (m *MockCollectionRepository) FindBySlug(ctx context.Context, slug string) (model.Collection, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Collection)
	return c, args.Error(1)
}

func TestProductUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	collectionRepo := new(MockCollectionRepository)

	productRepo.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 20}).Return([]model.Product{
		{ID: "p1", Name: "Oak Table", Price: "100.00"},
	}, int64(1), nil)

	u := NewProductUsecase(productRepo, collectionRepo)

	out, err := u.ListProducts(ctx, ListProductsInput{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

// slug指定はコレクションを引いてIDで絞る
func TestProductUsecase_ListProducts_BySlug(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	collectionRepo := new(MockCollectionRepository)

	collectionRepo.On("FindBySlug", mock.Anything, "tables").Return(model.Collection{ID: "c1", Slug: "tables"}, nil)
	productRepo.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 20, CollectionID: "c1"}).Return([]model.Product{}, int64(0), nil)

	u := NewProductUsecase(productRepo, collectionRepo)

	_, err := u.ListProducts(ctx, ListProductsInput{Page: 1, Limit: 20, CollectionSlug: "tables"})
	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_UnknownSlug(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	collectionRepo := new(MockCollectionRepository)

	collectionRepo.On("FindBySlug", mock.Anything, "ghost").Return(model.Collection{}, repo.ErrNotFound)

	u := NewProductUsecase(productRepo, collectionRepo)

	_, err := u.ListProducts(ctx, ListProductsInput{Page: 1, Limit: 20, CollectionSlug: "ghost"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductUsecase_ListProducts_InvalidParams(t *testing.T) {
	cases := []struct {
		name string
		in   ListProductsInput
	}{
		{"pageが0", ListProductsInput{Page: 0, Limit: 20}},
		{"limitが0", ListProductsInput{Page: 1, Limit: 0}},
		{"limitが大きすぎる", ListProductsInput{Page: 1, Limit: 101}},
		{"sortが不正", ListProductsInput{Page: 1, Limit: 20, Sort: "random"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewProductUsecase(new(MockProductRepository), new(MockCollectionRepository))

			_, err := u.ListProducts(context.Background(), tc.in)
			he, ok := AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)

	productRepo.On("FindByID", mock.Anything, "ghost").Return(model.Product{}, repo.ErrNotFound)

	u := NewProductUsecase(productRepo, new(MockCollectionRepository))

	_, err := u.GetProductDetail(ctx, "ghost")
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
