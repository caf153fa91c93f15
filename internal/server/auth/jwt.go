// Package auth はシミュレータのベアラートークン認証を提供する
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingToken = errors.New("ベアラートークンがありません")
	ErrInvalidToken = errors.New("トークンが不正です")
)

// Issuer はHS256署名のアクセストークンを発行・検証する
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer はIssuerを作る
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue は利用者IDを主体とするトークンを発行する
func (i *Issuer) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(i.ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("トークン署名に失敗: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、主体の利用者IDを返す
func (i *Issuer) Verify(raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: 署名方式 %v", ErrInvalidToken, t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Middleware はBearerトークンを検証して利用者IDを
// c.Get("user_id") に格納するEchoミドルウェアを返す
func (i *Issuer) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
			}
			userID, err := i.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error())
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}
