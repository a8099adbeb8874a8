package handler

import (
	"net/http"

	"shop/internal/config"
	"shop/internal/middleware"
	"shop/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MediaHandler struct {
	uc  *usecase.MediaUsecase
	cfg config.Config
}

// ucはS3未設定のときnil
func NewMediaHandler(uc *usecase.MediaUsecase, cfg config.Config) *MediaHandler {
	return &MediaHandler{uc: uc, cfg: cfg}
}

type CreateMediaRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (h *MediaHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/medias", h.createUpload, middleware.RequireAuth(h.cfg))
	e.GET("/api/medias/:id", h.getMedia)
	e.DELETE("/api/medias/:id", h.deleteMedia, middleware.RequireAuth(h.cfg))
}

func (h *MediaHandler) createUpload(c echo.Context) error {
	if h.uc == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "media storage is not configured"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateMediaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.CreateUpload(c.Request().Context(), userID, usecase.CreateMediaInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MediaHandler) getMedia(c echo.Context) error {
	if h.uc == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "media storage is not configured"})
	}

	out, err := h.uc.GetMedia(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MediaHandler) deleteMedia(c echo.Context) error {
	if h.uc == nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "media storage is not configured"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}
