package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		if c.Get("username") != "recruiter" {
			t.Fatalf("username not set")
		}
		if c.Get("role") != "operator" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := sign(t, jwt.MapClaims{
		"username": "recruiter",
		"role":     "operator",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, "secret")

	rec, called := runAuth(t, "Bearer "+token)
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := sign(t, jwt.MapClaims{"username": "recruiter", "role": "operator", "exp": time.Now().Add(-time.Minute).Unix()}, "secret")
	noExp := sign(t, jwt.MapClaims{"username": "recruiter", "role": "operator"}, "secret")
	wrongKey := sign(t, jwt.MapClaims{"username": "recruiter", "role": "operator", "exp": time.Now().Add(time.Hour).Unix()}, "other")
	noRole := sign(t, jwt.MapClaims{"username": "recruiter", "exp": time.Now().Add(time.Hour).Unix()}, "secret")

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage":        "Bearer not-a-token",
		"expired":        "Bearer " + expired,
		"no expiry":      "Bearer " + noExp,
		"wrong key":      "Bearer " + wrongKey,
		"no role":        "Bearer " + noRole,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
