package usecase

import (
	"context"
	"net/http"

	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /api/cart の業務ロジック。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

// DI
func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// priceはカートを開いた時点のカタログ価格。注文時にもう一度引き直す。
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	ImagePath string `json:"image_path"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return u.buildCartResponse(ctx, userID)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品の存在チェック
	_, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Upsert(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 数量変更
func (u *CartUsecase) UpdateItem(ctx context.Context, userID string, productID string, in UpdateCartItemInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	err := u.cartRepo.UpdateQuantity(ctx, userID, productID, in.Quantity)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, productID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	err := u.cartRepo.Delete(ctx, userID, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// 明細と現在のカタログ価格をまとめてレスポンスを組む
func (u *CartUsecase) buildCartResponse(ctx context.Context, userID string) (CartResponse, error) {
	items, err := u.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	out := make([]CartItemResponse, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		i, ok := byID[it.ProductID]
		if !ok {
			//商品が消えていたら明細は表示しない
			continue
		}
		p := products[i]

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "invalid price")
		}
		total = total.Add(price.Mul(decimal.NewFromInt(it.Quantity)))

		out = append(out, CartItemResponse{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImagePath: p.ImagePath,
			Quantity:  it.Quantity,
		})
	}

	return CartResponse{Items: out, Total: total.String()}, nil
}
