package handler

import (
	"net/http"
	"strconv"

	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CollectionHandler struct {
	uc *usecase.CollectionUsecase
}

// DI
func NewCollectionHandler(uc *usecase.CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

func (h *CollectionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/collections", h.list)
	e.GET("/api/collections/:slug", h.detail)
}

func (h *CollectionHandler) list(c echo.Context) error {
	out, err := h.uc.ListCollections(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CollectionHandler) detail(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.GetCollectionBySlug(c.Request().Context(), c.Param("slug"), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
