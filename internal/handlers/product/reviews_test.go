package product

import (
	"strings"
	"testing"
)

func TestAppendThreadBlock(t *testing.T) {
	first := AppendThreadBlock("", "Client", "  Le produit est arrivé cassé.  ")
	if strings.Count(first, "\n") != 0 {
		t.Errorf("le premier bloc ne doit pas contenir de saut de ligne: %q", first)
	}
	if !strings.HasPrefix(first, "[") {
		t.Errorf("bloc sans horodatage: %q", first)
	}
	if !strings.HasSuffix(first, "Client: Le produit est arrivé cassé.") {
		t.Errorf("auteur ou message mal formaté: %q", first)
	}

	second := AppendThreadBlock(first, "Vendeur", "Nous vous renvoyons un exemplaire.")
	lines := strings.Split(second, "\n")
	if len(lines) != 2 {
		t.Fatalf("attendu 2 blocs, obtenu %d: %q", len(lines), second)
	}
	if lines[0] != first {
		t.Error("le fil existant doit rester intact")
	}
	if !strings.Contains(lines[1], "Vendeur: Nous vous renvoyons un exemplaire.") {
		t.Errorf("réponse mal ajoutée: %q", lines[1])
	}
}
