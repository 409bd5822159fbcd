package order

import (
	"errors"
	"testing"

	"bazar_back_end/internal/models"

	"github.com/google/uuid"
)

func TestSnapshotItemsFreezesPrices(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()
	variantID := uuid.New()

	lines := []cartLine{
		{ProductID: productID, Quantity: 2},
		{ProductID: productID, VariantID: &variantID, Quantity: 1},
	}
	products := map[uuid.UUID]productInfo{
		productID: {Title: "Clavier mécanique", Price: 79.90, Stock: 10},
	}
	deltas := map[uuid.UUID]float64{variantID: 15.00}

	items, err := snapshotItems(orderID, lines, products, deltas)
	if err != nil {
		t.Fatalf("snapshotItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("attendu 2 lignes, obtenu %d", len(items))
	}
	if items[0].UnitPrice != 79.90 {
		t.Errorf("prix sans variante = %v, attendu 79.90", items[0].UnitPrice)
	}
	if items[1].UnitPrice != 94.90 {
		t.Errorf("prix avec variante = %v, attendu 94.90", items[1].UnitPrice)
	}
	for _, it := range items {
		if it.OrderID != orderID {
			t.Errorf("order_id non propagé sur la ligne %s", it.Title)
		}
		if it.Title != "Clavier mécanique" {
			t.Errorf("titre non figé: %q", it.Title)
		}
	}
}

func TestSnapshotItemsCumulativeStock(t *testing.T) {
	productID := uuid.New()
	v1, v2 := uuid.New(), uuid.New()

	// 3 + 3 sur un stock de 5 : chaque ligne passe isolément,
	// pas cumulées.
	lines := []cartLine{
		{ProductID: productID, VariantID: &v1, Quantity: 3},
		{ProductID: productID, VariantID: &v2, Quantity: 3},
	}
	products := map[uuid.UUID]productInfo{
		productID: {Title: "Coque", Price: 9.90, Stock: 5},
	}

	_, err := snapshotItems(uuid.New(), lines, products, nil)
	if err == nil {
		t.Fatal("attendu une erreur de stock, obtenu nil")
	}
	var stockErr insufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("attendu insufficientStockError, obtenu %T", err)
	}
	if stockErr.Available != 2 || stockErr.Requested != 3 {
		t.Errorf("erreur = %d demandés / %d disponibles, attendu 3/2",
			stockErr.Requested, stockErr.Available)
	}
}

func TestSnapshotItemsUnknownProduct(t *testing.T) {
	lines := []cartLine{{ProductID: uuid.New(), Quantity: 1}}
	_, err := snapshotItems(uuid.New(), lines, map[uuid.UUID]productInfo{}, nil)
	if err == nil {
		t.Fatal("attendu une erreur pour produit inconnu")
	}
}

func TestComputeTotal(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2, UnitPrice: 10.50},
		{Quantity: 1, UnitPrice: 4.00},
	}
	if got := computeTotal(items); got != 25.00 {
		t.Errorf("computeTotal = %v, attendu 25.00", got)
	}
	if got := computeTotal(nil); got != 0 {
		t.Errorf("computeTotal(nil) = %v, attendu 0", got)
	}
}
