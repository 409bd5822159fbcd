package support

import (
	"strings"
	"testing"

	"bazar_back_end/internal/models"
)

func TestComplaintScope(t *testing.T) {
	// ADMIN : aucune restriction
	where, args := complaintScope(models.RoleAdmin, "u1")
	if where != "" || args != nil {
		t.Errorf("admin: clause %q / args %v, attendu aucune restriction", where, args)
	}

	// USER : seulement ses réclamations
	where, args = complaintScope(models.RoleUser, "u1")
	if !strings.Contains(where, "user_id = $1") {
		t.Errorf("user: clause %q ne filtre pas sur user_id", where)
	}
	if len(args) != 1 || args[0] != "u1" {
		t.Errorf("user: args = %v, attendu [u1]", args)
	}

	// SELLER : réclamations dont la commande contient un de ses produits
	where, args = complaintScope(models.RoleSeller, "u2")
	for _, table := range []string{"order_items", "products", "sellers"} {
		if !strings.Contains(where, table) {
			t.Errorf("seller: clause %q ne joint pas %s", where, table)
		}
	}
	if !strings.Contains(where, "s.user_id = $1") {
		t.Errorf("seller: clause %q ne filtre pas sur le vendeur", where)
	}
	if len(args) != 1 || args[0] != "u2" {
		t.Errorf("seller: args = %v, attendu [u2]", args)
	}
}
