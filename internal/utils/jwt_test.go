package utils

import (
	"testing"

	"bazar_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateJWTClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_de_test")

	user := models.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Role:  models.RoleSeller,
	}

	tokenString, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret_de_test"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalide: %v", err)
	}

	if claims["user_id"] != user.ID.String() {
		t.Errorf("user_id = %v, attendu %s", claims["user_id"], user.ID)
	}
	if claims["email"] != "alice@example.com" {
		t.Errorf("email = %v", claims["email"])
	}
	if claims["role"] != models.RoleSeller {
		t.Errorf("role = %v, attendu %s", claims["role"], models.RoleSeller)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("le token doit expirer")
	}
}

func TestGenerateJWTWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret_de_test")

	tokenString, err := GenerateJWT(models.User{ID: uuid.New(), Email: "a@b.c", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	_, err = jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("autre_secret"), nil
	})
	if err == nil {
		t.Error("un token signé avec un autre secret doit être rejeté")
	}
}
