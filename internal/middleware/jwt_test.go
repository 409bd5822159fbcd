package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signature du token: %v", err)
	}
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return r
}

func TestAuthRequiredValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_de_test")

	token := signToken(t, "secret_de_test", jwt.MapClaims{
		"user_id": "42",
		"email":   "alice@example.com",
		"role":    "USER",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	r := authRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("statut = %d, attendu 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestAuthRequiredRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_de_test")

	expired := signToken(t, "secret_de_test", jwt.MapClaims{
		"user_id": "42",
		"role":    "USER",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongSecret := signToken(t, "autre_secret", jwt.MapClaims{
		"user_id": "42",
		"role":    "USER",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"en-tête absent", ""},
		{"format invalide", "Bearer"},
		{"pas un token", "Bearer pas-un-jwt"},
		{"mauvais secret", "Bearer " + wrongSecret},
		{"token expiré", "Bearer " + expired},
	}

	r := authRouter()
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: statut = %d, attendu 401", tc.name, w.Code)
		}
	}
}
