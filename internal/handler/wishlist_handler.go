package handler

import (
	"net/http"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	uc  *usecase.WishlistUsecase
	cfg config.Config
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase, cfg config.Config) *WishlistHandler {
	return &WishlistHandler{uc: uc, cfg: cfg}
}

type AddWishlistRequest struct {
	ProductID string `json:"product_id"`
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/wishlist")
	g.Use(middleware.RequireAuth(h.cfg))

	g.GET("", h.getWishlist)
	g.POST("", h.add)
	g.DELETE("/:productId", h.remove)
}

func (h *WishlistHandler) getWishlist(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetWishlist(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Remove(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
