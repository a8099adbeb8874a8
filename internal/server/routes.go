package server

import (
	"shop/internal/handler"
	"shop/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Handlers はルーティングに参加する全ハンドラ。
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Collection *handler.CollectionHandler
	Order      *handler.OrderHandler
	Cart       *handler.CartHandler
	Wishlist   *handler.WishlistHandler
	Media      *handler.MediaHandler
	Health     *handler.HealthHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Collection.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Wishlist.RegisterRoutes(e)
	h.Media.RegisterRoutes(e)
	h.Health.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
