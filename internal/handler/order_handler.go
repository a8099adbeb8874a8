package handler

import (
	"io"
	"net/http"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"
	"shop/internal/validator"
	"shop/pkg/metrics"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc      *usecase.OrderUsecase
	cfg     config.Config
	metrics *metrics.ServerMetrics
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase, cfg config.Config, m *metrics.ServerMetrics) *OrderHandler {
	return &OrderHandler{uc: uc, cfg: cfg, metrics: m}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	//注文作成はゲストも叩けるので認証ミドルウェアは挟まない
	e.POST("/api/create-order", h.create)

	e.GET("/api/orders", h.list, middleware.RequireAuth(h.cfg))
	//注文詳細はゲスト注文もIDで見られるためIdentifyで受ける
	e.GET("/api/orders/:id", h.detail, middleware.Identify(h.cfg))
}

// POST /api/create-order
// 形が不正なら400で中身はJSON文字列リテラル。DBには一切触れない。
// 本体の失敗は500のプレーンテキスト。詳細はクライアントに出さない。
func (h *OrderHandler) create(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal Error")
	}

	payload, err := validator.ValidateCreateOrder(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Invalid data format.")
	}

	//guest指定のときはセッションを見に行かない
	userID := ""
	if !payload.Guest {
		if v, ok := middleware.UserIDFromRequest(c, h.cfg); ok {
			userID = v
		}
	}

	out, _, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		Quantities: payload.Quantities,
		UserID:     userID,
	})
	if err != nil {
		return c.String(http.StatusInternalServerError, "Internal Error")
	}

	if h.metrics != nil {
		h.metrics.OrdersCreated.Inc()
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, _ := getUserIDFromContext(c)

	out, err := h.uc.GetOrderDetail(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	v, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
