package usecase

import (
	"context"
	"net/http"
	"time"

	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// このシステムが扱う通貨は1つだけ
const OrderCurrency = "cad"

const PaymentMethodTest = "test"

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type OrderUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
	carts    repo.CartRepository
	wishlist repo.WishlistRepository
	idGen    IDGenerator
	clock    Clock
	logger   *zap.Logger
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	carts repo.CartRepository,
	wishlist repo.WishlistRepository,
	idGen IDGenerator,
	clock Clock,
	logger *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		products: products,
		carts:    carts,
		wishlist: wishlist,
		idGen:    idGen,
		clock:    clock,
		logger:   logger,
	}
}

type CreateOrderInput struct {
	// productID → 数量（validator通過済み、>=1）
	Quantities map[string]int64
	// 空文字ならゲスト注文
	UserID string
}

type CreateOrderOutput struct {
	OrderID             string   `json:"orderId"`
	Success             bool     `json:"success"`
	PurchasedProductIDs []string `json:"purchasedProductIds"`
}

// HousekeepingResult はカート全消し・お気に入り削除の結果。
// 注文本体とは独立に返し、失敗しても注文は取り消さない。
type HousekeepingResult struct {
	Attempted       bool
	CartCleared     int64
	WishlistRemoved int64
	Err             error
}

// 商品と数量のペア（pricing resolverの出力）
type resolvedLine struct {
	product  model.Product
	quantity int64
}

// CreateOrder は注文作成の本体。
// カタログを1回のバッチ取得で引き、注文と明細を1トランザクションで書き、
// 会員のときだけカート・お気に入りを後片付けする。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, HousekeepingResult, error) {
	var hk HousekeepingResult

	lines, subtotal, err := u.resolvePricing(ctx, in.Quantities)
	if err != nil {
		return CreateOrderOutput{}, hk, err
	}

	now := u.clock.Now()
	orderID := u.idGen.NewID()

	var userID *string
	if in.UserID != "" {
		userID = &in.UserID
	}

	order := model.Order{
		ID:            orderID,
		UserID:        userID,
		Currency:      OrderCurrency,
		Amount:        subtotal.String(),
		OrderStatus:   model.OrderStatusCompleted,
		PaymentStatus: model.PaymentStatusNoPaymentRequired,
		PaymentMethod: PaymentMethodTest,
		CreatedAt:     now,
	}

	orderLines := make([]model.OrderLine, 0, len(lines))
	purchasedIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		//単価は今この瞬間のカタログ価格を記録する
		orderLines = append(orderLines, model.OrderLine{
			ID:        u.idGen.NewID(),
			OrderID:   orderID,
			ProductID: l.product.ID,
			Quantity:  l.quantity,
			Price:     l.product.Price,
			CreatedAt: now,
		})
		purchasedIDs = append(purchasedIDs, l.product.ID)
	}

	//注文と明細はひとつのトランザクションで書く
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}
		return r.OrderLines().CreateBulk(ctx, orderLines)
	})
	if err != nil {
		return CreateOrderOutput{}, hk, err
	}

	//後片付けは会員のみ。失敗してもここまでの注文は確定のまま。
	if in.UserID != "" {
		hk = u.cleanupAfterOrder(ctx, in.UserID, purchasedIDs)
	}

	return CreateOrderOutput{
		OrderID:             orderID,
		Success:             true,
		PurchasedProductIDs: purchasedIDs,
	}, hk, nil
}

// resolvePricing はカタログから現在価格を引いて小計を出す。
// カタログに無いIDはエラーにせず黙って落とす。
func (u *OrderUsecase) resolvePricing(ctx context.Context, quantities map[string]int64) ([]resolvedLine, decimal.Decimal, error) {
	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}

	products, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}

	lines := make([]resolvedLine, 0, len(products))
	subtotal := decimal.Zero

	for _, p := range products {
		qty := quantities[p.ID]

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, decimal.Zero, err
		}

		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(qty)))
		lines = append(lines, resolvedLine{product: p, quantity: qty})
	}

	return lines, subtotal, nil
}

// cleanupAfterOrder はカートを全消しし、購入した商品だけお気に入りから外す。
func (u *OrderUsecase) cleanupAfterOrder(ctx context.Context, userID string, purchasedIDs []string) HousekeepingResult {
	hk := HousekeepingResult{Attempted: true}

	cleared, err := u.carts.ClearByUserID(ctx, userID)
	if err != nil {
		u.logger.Error("cart clear failed after order",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		hk.Err = err
		return hk
	}
	hk.CartCleared = cleared

	removed, err := u.wishlist.RemoveByUserAndProducts(ctx, userID, purchasedIDs)
	if err != nil {
		u.logger.Error("wishlist prune failed after order",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		hk.Err = err
		return hk
	}
	hk.WishlistRemoved = removed

	return hk
}

type OrderLineOutput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	Currency      string            `json:"currency"`
	Amount        string            `json:"amount"`
	OrderStatus   string            `json:"order_status"`
	PaymentStatus string            `json:"payment_status"`
	PaymentMethod string            `json:"payment_method"`
	CreatedAt     time.Time         `json:"created_at"`
	Lines         []OrderLineOutput `json:"lines"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, lines))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//他人の注文は「存在しない扱い」にする。ゲスト注文はIDを知っていれば見られる。
		if o.UserID != nil && *o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, lines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	outLines := make([]OrderLineOutput, 0, len(lines))
	for _, l := range lines {
		outLines = append(outLines, OrderLineOutput{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		Currency:      o.Currency,
		Amount:        o.Amount,
		OrderStatus:   string(o.OrderStatus),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		Lines:         outLines,
	}
}
