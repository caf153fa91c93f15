package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_発行したトークンを検証できる(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestIssuer_別の鍵で署名されたトークンは拒否する(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Minute)
	other := NewIssuer("secret-b", time.Minute)

	token, err := other.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_期限切れトークンは拒否する(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("user-42")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware_トークンの有無で通過を制御する(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	e := echo.New()

	handler := issuer.Middleware()(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("user_id").(string))
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"ヘッダーなし", "", http.StatusUnauthorized},
		{"Bearer以外", "Basic abc", http.StatusUnauthorized},
		{"壊れたトークン", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.wantStatus, he.Code)
		})
	}

	t.Run("正しいトークンは利用者IDを格納して通過する", func(t *testing.T) {
		token, err := issuer.Issue("user-42")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, handler(c))
		assert.Equal(t, "user-42", rec.Body.String())
	})
}
