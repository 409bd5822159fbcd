package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func addToCartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cart/add",
		func(c *gin.Context) { c.Set("user_id", "42") },
		AddToCart)
	return r
}

// Les entrées invalides doivent être refusées avant tout accès à la base.
func TestAddToCartRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"produit manquant", `{"quantity": 1}`},
		{"quantité nulle", `{"productId": "0f8fad5b-d9cb-469f-a165-70867728950e", "quantity": 0}`},
		{"quantité négative", `{"productId": "0f8fad5b-d9cb-469f-a165-70867728950e", "quantity": -2}`},
		{"id produit invalide", `{"productId": "pas-un-uuid", "quantity": 1}`},
		{"id variante invalide", `{"productId": "0f8fad5b-d9cb-469f-a165-70867728950e", "variantId": "pas-un-uuid", "quantity": 1}`},
	}

	r := addToCartRouter()
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: statut = %d, attendu 400", tc.name, w.Code)
		}
	}
}
