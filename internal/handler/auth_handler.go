package handler

import (
	"net/http"
	"time"

	"shop/internal/config"
	"shop/internal/middleware"
	auth "shop/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	loginUC    *auth.LoginUsecase
	refreshUC  *auth.RefreshUsecase
	logoutUC   *auth.LogoutUsecase
	deleteUC   *auth.DeleteAccountUsecase
	cfg        config.Config
	refreshTTL time.Duration
}

// DI
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshUsecase,
	logoutUC *auth.LogoutUsecase,
	deleteUC *auth.DeleteAccountUsecase,
	cfg config.Config,
	refreshTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		logoutUC:   logoutUC,
		deleteUC:   deleteUC,
		cfg:        cfg,
		refreshTTL: refreshTTL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
	e.POST("/auth/logout", h.logout)

	e.DELETE("/api/account", h.deleteAccount, middleware.RequireAuth(h.cfg))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidEmailFormat, auth.ErrPasswordTooShort, auth.ErrWeakPassword:
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
		case auth.ErrEmailAlreadyExists:
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "CONFLICT"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	}

	// User-Agentはrefresh tokenに紐付ける
	out, side, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		switch err {
		case auth.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
		case auth.ErrUserInactive:
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "FORBIDDEN"})
		default:
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	}

	out, side, err := h.refreshUC.Execute(c.Request().Context(), auth.RefreshInput{
		PlainRefreshToken: cookie.Value,
		UserAgent:         c.Request().UserAgent(),
	})
	if err != nil {
		if err == auth.ErrInvalidRefresh {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
	}

	h.setRefreshCookie(c, side.PlainRefreshToken)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie.Value != "" {
		if err := h.logoutUC.Execute(c.Request().Context(), cookie.Value); err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
		}
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.deleteUC.Execute(c.Request().Context(), userID); err != nil {
		if err == auth.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "account deleted"})
}

// refresh tokenをHttpOnly Cookieにセット
func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/auth",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
