package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("motdepasse123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "motdepasse123" {
		t.Fatal("le mot de passe ne doit jamais être stocké en clair")
	}
	if !VerifyPassword("motdepasse123", hash) {
		t.Error("le bon mot de passe doit être accepté")
	}
	if VerifyPassword("mauvais", hash) {
		t.Error("un mauvais mot de passe doit être refusé")
	}
}
