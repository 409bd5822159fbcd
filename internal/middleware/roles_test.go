package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func roleRouter(role string, allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure",
		func(c *gin.Context) { c.Set("role", role) },
		RequireRoles(allowed...),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRequireRolesAllows(t *testing.T) {
	r := roleRouter("ADMIN", "SELLER", "ADMIN")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("statut = %d, attendu 200", w.Code)
	}
}

func TestRequireRolesRejects(t *testing.T) {
	cases := []struct {
		name string
		role string
	}{
		{"mauvais rôle", "USER"},
		{"rôle absent", ""},
	}

	for _, tc := range cases {
		r := roleRouter(tc.role, "SELLER", "ADMIN")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("%s: statut = %d, attendu 403", tc.name, w.Code)
		}
	}
}
