package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// MetricsTokenAuth は /metrics エンドポイント用のトークン認証ミドルウェア。
// token が空の場合は認証をスキップする（ローカル開発用）。
func MetricsTokenAuth(token string) echo.MiddlewareFunc {
	if token == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	expected := []byte(token)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
			}
			got := []byte(strings.TrimPrefix(header, "Bearer "))

			// タイミング攻撃を防ぐため ConstantTimeCompare を使用
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "トークンが一致しません")
			}
			return next(c)
		}
	}
}
