package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// =====================
// スタブrepo群（handler経由の挙動だけ見たいので呼び出し記録式）
// =====================

type stubProductRepo struct {
	products []model.Product
	err      error
}

func (s *stubProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	return nil, 0, errors.New("not used")
}

func (s *stubProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	return model.Product{}, repo.ErrNotFound
}

func (s *stubProductRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

type stubOrderRepo struct {
	created []model.Order
	err     error
}

func (s *stubOrderRepo) Create(ctx context.Context, order model.Order) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	return model.Order{}, repo.ErrNotFound
}

func (s *stubOrderRepo) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	return nil, 0, nil
}

type stubOrderLineRepo struct {
	created []model.OrderLine
}

func (s *stubOrderLineRepo) CreateBulk(ctx context.Context, lines []model.OrderLine) error {
	s.created = append(s.created, lines...)
	return nil
}

func (s *stubOrderLineRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderLine, error) {
	return nil, nil
}

type stubCartRepo struct {
	clearCalls []string
}

func (s *stubCartRepo) ListByUserID(ctx context.Context, userID string) ([]model.CartItem, error) {
	return nil, nil
}

func (s *stubCartRepo) Upsert(ctx context.Context, userID string, productID string, addQty int64) error {
	return nil
}

func (s *stubCartRepo) UpdateQuantity(ctx context.Context, userID string, productID string, qty int64) error {
	return nil
}

func (s *stubCartRepo) Delete(ctx context.Context, userID string, productID string) error {
	return nil
}

func (s *stubCartRepo) ClearByUserID(ctx context.Context, userID string) (int64, error) {
	s.clearCalls = append(s.clearCalls, userID)
	return 0, nil
}

type stubWishlistRepo struct {
	removeCalls [][]string
}

func (s *stubWishlistRepo) ListByUserID(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	return nil, nil
}

func (s *stubWishlistRepo) Add(ctx context.Context, userID string, productID string) error {
	return nil
}

func (s *stubWishlistRepo) Remove(ctx context.Context, userID string, productID string) error {
	return nil
}

func (s *stubWishlistRepo) RemoveByUserAndProducts(ctx context.Context, userID string, productIDs []string) (int64, error) {
	s.removeCalls = append(s.removeCalls, productIDs)
	return int64(len(productIDs)), nil
}

type stubTxRepos struct {
	orders   repo.OrderRepository
	lines    repo.OrderLineRepository
	carts    repo.CartRepository
	wishlist repo.WishlistRepository
	products repo.ProductRepository
}

func (s stubTxRepos) Orders() repo.OrderRepository         { return s.orders }
func (s stubTxRepos) OrderLines() repo.OrderLineRepository { return s.lines }
func (s stubTxRepos) Carts() repo.CartRepository           { return s.carts }
func (s stubTxRepos) Wishlist() repo.WishlistRepository    { return s.wishlist }
func (s stubTxRepos) Products() repo.ProductRepository     { return s.products }

type stubTxManager struct {
	repos stubTxRepos
}

func (s *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

type stubIDGen struct{}

func (g *stubIDGen) NewID() string { return "00000000-0000-4000-8000-000000000001" }

type stubClock struct{}

func (c *stubClock) Now() time.Time { return time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC) }

type orderHandlerFixture struct {
	products *stubProductRepo
	orders   *stubOrderRepo
	lines    *stubOrderLineRepo
	carts    *stubCartRepo
	wishlist *stubWishlistRepo
	cfg      config.Config
	e        *echo.Echo
}

func newOrderHandlerFixture() *orderHandlerFixture {
	f := &orderHandlerFixture{
		products: &stubProductRepo{},
		orders:   &stubOrderRepo{},
		lines:    &stubOrderLineRepo{},
		carts:    &stubCartRepo{},
		wishlist: &stubWishlistRepo{},
		cfg:      config.Config{JWTSecret: "test-secret"},
	}

	tx := &stubTxManager{repos: stubTxRepos{
		orders:   f.orders,
		lines:    f.lines,
		carts:    f.carts,
		wishlist: f.wishlist,
		products: f.products,
	}}
	uc := usecase.NewOrderUsecase(tx, f.products, f.carts, f.wishlist, &stubIDGen{}, &stubClock{}, zap.NewNop())

	f.e = echo.New()
	NewOrderHandler(uc, f.cfg, nil).RegisterRoutes(f.e)
	return f
}

func (f *orderHandlerFixture) post(t *testing.T, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/create-order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func signTestToken(t *testing.T, secret string, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

// 400の中身はJSON文字列リテラルそのもの
func TestOrderHandler_Create_InvalidFormat(t *testing.T) {
	f := newOrderHandlerFixture()

	rec := f.post(t, `{"guest":true}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `"Invalid data format."`, strings.TrimSpace(rec.Body.String()))

	// バリデーション失敗時はDBに一切触れない
	assert.Empty(t, f.orders.created)
	assert.Empty(t, f.carts.clearCalls)
}

func TestOrderHandler_Create_Guest_Success(t *testing.T) {
	f := newOrderHandlerFixture()
	f.products.products = []model.Product{{ID: "p1", Price: "49.95"}}

	rec := f.post(t, `{"orderProducts":{"p1":{"quantity":1}},"guest":true}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OrderID             string   `json:"orderId"`
		Success             bool     `json:"success"`
		PurchasedProductIDs []string `json:"purchasedProductIds"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, []string{"p1"}, resp.PurchasedProductIDs)

	// ゲストなので注文はuserに紐付かず、後片付けも走らない
	if assert.Len(t, f.orders.created, 1) {
		assert.Nil(t, f.orders.created[0].UserID)
	}
	assert.Empty(t, f.carts.clearCalls)
}

// guest:trueならトークンが付いていてもセッションは見ない
func TestOrderHandler_Create_GuestIgnoresToken(t *testing.T) {
	f := newOrderHandlerFixture()
	f.products.products = []model.Product{{ID: "p1", Price: "10.00"}}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-1"))
	rec := f.post(t, `{"orderProducts":{"p1":{"quantity":1}},"guest":true}`, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, f.orders.created, 1) {
		assert.Nil(t, f.orders.created[0].UserID)
	}
}

func TestOrderHandler_Create_Member_Success(t *testing.T) {
	f := newOrderHandlerFixture()
	f.products.products = []model.Product{{ID: "p1", Price: "100.00"}}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+signTestToken(t, "test-secret", "user-1"))
	rec := f.post(t, `{"orderProducts":{"p1":{"quantity":2}},"guest":false}`, h)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, f.orders.created, 1) {
		assert.NotNil(t, f.orders.created[0].UserID)
	}
	// カート全消しと購入分のお気に入り削除が走る
	assert.Equal(t, []string{"user-1"}, f.carts.clearCalls)
	if assert.Len(t, f.wishlist.removeCalls, 1) {
		assert.Equal(t, []string{"p1"}, f.wishlist.removeCalls[0])
	}
}

// トークンなしのguest:falseはゲスト扱いで通す
func TestOrderHandler_Create_MemberWithoutToken(t *testing.T) {
	f := newOrderHandlerFixture()
	f.products.products = []model.Product{{ID: "p1", Price: "10.00"}}

	rec := f.post(t, `{"orderProducts":{"p1":{"quantity":1}},"guest":false}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	if assert.Len(t, f.orders.created, 1) {
		assert.Nil(t, f.orders.created[0].UserID)
	}
	assert.Empty(t, f.carts.clearCalls)
}

// 本体の失敗は500のプレーンテキスト
func TestOrderHandler_Create_InternalError(t *testing.T) {
	f := newOrderHandlerFixture()
	f.products.err = errors.New("db down")

	rec := f.post(t, `{"orderProducts":{"p1":{"quantity":1}},"guest":true}`, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Error", rec.Body.String())
}

func TestOrderHandler_List_RequiresAuth(t *testing.T) {
	f := newOrderHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
