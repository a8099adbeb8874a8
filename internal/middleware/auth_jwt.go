package middleware

import (
	"errors"
	"net/http"
	"strings"

	"shop/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey = "user_id" // string（uuid）
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// RequireAuthはbearerトークン必須のJWT検証ミドルウェア。
func RequireAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserIDFromRequest(c, cfg)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, userID)
			return next(c)
		}
	}
}

// Identifyはトークンがあればuser_idをcontextに入れるだけで、無くても通す。
// ゲスト注文のようにセッションが任意のエンドポイントで使う。
func Identify(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := UserIDFromRequest(c, cfg); ok {
				c.Set(CtxUserIDKey, userID)
			}
			return next(c)
		}
	}
}

// UserIDFromRequestはAuthorizationヘッダからuser_idを取り出す。
// handlerが自分のタイミングでセッションを引きたいときにも使う。
func UserIDFromRequest(c echo.Context, cfg config.Config) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" {
		return "", false
	}

	//Bearer形式か確認してtokenを抜く
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	rawToken := strings.TrimSpace(parts[1])
	if rawToken == "" {
		return "", false
	}

	//JWTをパースして検証する
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}

	return sub, true
}
