package order

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestLookupErrorStatus(t *testing.T) {
	if got := lookupErrorStatus(nil); got != 0 {
		t.Errorf("sans erreur = %d, attendu 0", got)
	}
	if got := lookupErrorStatus(pgx.ErrNoRows); got != http.StatusNotFound {
		t.Errorf("ligne absente = %d, attendu 404", got)
	}
	// même enveloppée, l'absence de ligne reste un 404
	wrapped := fmt.Errorf("lecture commande: %w", pgx.ErrNoRows)
	if got := lookupErrorStatus(wrapped); got != http.StatusNotFound {
		t.Errorf("erreur enveloppée = %d, attendu 404", got)
	}
	// toute autre erreur (connexion coupée...) ne doit pas produire de QR
	if got := lookupErrorStatus(errors.New("connexion fermée")); got != http.StatusInternalServerError {
		t.Errorf("erreur quelconque = %d, attendu 500", got)
	}
}
