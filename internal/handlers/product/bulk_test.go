package product

import "testing"

func TestMapHeaderOrderIndependent(t *testing.T) {
	cols := mapHeader([]string{"Category", "price", " Title ", "stock", "colonne_inconnue"})

	if cols["category"] != 0 || cols["price"] != 1 || cols["title"] != 2 || cols["stock"] != 3 {
		t.Errorf("mapping inattendu: %v", cols)
	}
	if _, ok := cols["colonne_inconnue"]; ok {
		t.Error("les colonnes inconnues doivent être ignorées")
	}
	if _, ok := cols["id"]; ok {
		t.Error("colonne id absente de l'en-tête mais présente dans le mapping")
	}
}

func TestParseImportRowValid(t *testing.T) {
	cols := mapHeader([]string{"title", "price", "stock", "category", "description"})
	row, err := parseImportRow(cols, []string{"Lampe de bureau", "24.90", "12", "Maison", "LED, blanc chaud"})
	if err != nil {
		t.Fatalf("parseImportRow: %v", err)
	}
	if row.Title != "Lampe de bureau" || row.Price != 24.90 || row.Stock != 12 || row.Category != "Maison" {
		t.Errorf("ligne mal parsée: %+v", row)
	}
}

func TestParseImportRowErrors(t *testing.T) {
	cols := mapHeader([]string{"title", "price", "category", "stock"})

	cases := []struct {
		name   string
		record []string
	}{
		{"titre manquant", []string{"", "10.00", "Maison", "1"}},
		{"catégorie manquante", []string{"Lampe", "10.00", "", "1"}},
		{"prix vide", []string{"Lampe", "", "Maison", "1"}},
		{"prix négatif", []string{"Lampe", "-5", "Maison", "1"}},
		{"prix non numérique", []string{"Lampe", "abc", "Maison", "1"}},
		{"stock négatif", []string{"Lampe", "10.00", "Maison", "-3"}},
	}

	for _, tc := range cases {
		if _, err := parseImportRow(cols, tc.record); err == nil {
			t.Errorf("%s: attendu une erreur, obtenu nil", tc.name)
		}
	}
}

func TestParseImportRowShortRecord(t *testing.T) {
	cols := mapHeader([]string{"title", "price", "category", "stock"})
	// ligne plus courte que l'en-tête : les colonnes absentes sont vides
	row, err := parseImportRow(cols, []string{"Lampe", "10.00", "Maison"})
	if err != nil {
		t.Fatalf("parseImportRow: %v", err)
	}
	if row.Stock != 0 {
		t.Errorf("stock = %d, attendu 0 par défaut", row.Stock)
	}
}
