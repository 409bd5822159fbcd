package order

import (
	"fmt"
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cartLine struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
}

type productInfo struct {
	Title    string
	Price    float64
	Stock    int
	SellerID *uuid.UUID
}

// insufficientStockError est renvoyée quand une ligne dépasse le stock
// disponible ; rien n'a été modifié quand elle survient.
type insufficientStockError struct {
	Title     string
	Available int
	Requested int
}

func (e insufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s : %d demandés, %d disponibles", e.Title, e.Requested, e.Available)
}

// snapshotItems transforme les lignes du panier en lignes de commande en
// figeant le prix unitaire (prix produit + delta de variante). Le stock est
// décompté cumulativement : deux lignes du même produit se partagent le
// stock disponible.
func snapshotItems(orderID uuid.UUID, lines []cartLine, products map[uuid.UUID]productInfo,
	deltas map[uuid.UUID]float64) ([]models.OrderItem, error) {

	remaining := make(map[uuid.UUID]int, len(products))
	for id, p := range products {
		remaining[id] = p.Stock
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("produit %s introuvable", line.ProductID)
		}
		if line.Quantity > remaining[line.ProductID] {
			return nil, insufficientStockError{
				Title:     p.Title,
				Available: remaining[line.ProductID],
				Requested: line.Quantity,
			}
		}
		remaining[line.ProductID] -= line.Quantity

		unitPrice := p.Price
		if line.VariantID != nil {
			unitPrice += deltas[*line.VariantID]
		}

		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: line.ProductID,
			Title:     p.Title,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}
	return items, nil
}

// computeTotal est la source unique du montant : order.total et
// payment.amount en découlent tous les deux.
func computeTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

//
// 🛒 POST /api/checkout
//
// La seule vraie garantie de cohérence du système : commande, lignes,
// paiement, décrément de stock, première ligne de tracking et vidage du
// panier partent dans une même transaction. Les notifications arrivent
// après le commit et n'y touchent pas.
func Checkout(c *gin.Context) {
	var req struct {
		Method  string `json:"method" binding:"required"`
		Address string `json:"address" binding:"required"`
		City    string `json:"city" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	ctx := c.Request.Context()

	// ✅ 1. Récupérer le panier
	var cartID uuid.UUID
	if err := database.Pool.QueryRow(ctx,
		`SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide ou introuvable"})
		return
	}

	rows, err := database.Pool.Query(ctx,
		`SELECT product_id, variant_id, quantity FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier", "details": err.Error()})
		return
	}

	var lines []cartLine
	for rows.Next() {
		var line cartLine
		if err := rows.Scan(&line.ProductID, &line.VariantID, &line.Quantity); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier", "details": err.Error()})
			return
		}
		lines = append(lines, line)
	}
	rows.Close()

	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 2. Transaction : tout ou rien
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur transaction", "details": err.Error()})
		return
	}
	defer tx.Rollback(ctx)

	// Verrouiller les produits (FOR UPDATE) avant le contrôle de stock,
	// sinon deux checkouts simultanés peuvent le faire passer en négatif
	products := make(map[uuid.UUID]productInfo, len(lines))
	for _, line := range lines {
		if _, done := products[line.ProductID]; done {
			continue
		}
		var p productInfo
		err := tx.QueryRow(ctx,
			`SELECT title, price, stock, seller_id FROM products WHERE id = $1 FOR UPDATE`,
			line.ProductID).Scan(&p.Title, &p.Price, &p.Stock, &p.SellerID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + line.ProductID.String()})
			return
		}
		products[line.ProductID] = p
	}

	// Deltas de prix des variantes
	deltas := make(map[uuid.UUID]float64)
	for _, line := range lines {
		if line.VariantID == nil {
			continue
		}
		var delta float64
		if err := tx.QueryRow(ctx,
			`SELECT price_delta FROM product_variants WHERE id = $1 AND product_id = $2`,
			*line.VariantID, line.ProductID).Scan(&delta); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Variante introuvable"})
			return
		}
		deltas[*line.VariantID] = delta
	}

	orderID := uuid.New()
	items, err := snapshotItems(orderID, lines, products, deltas)
	if err != nil {
		if stockErr, ok := err.(insufficientStockError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   stockErr.Title,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	total := computeTotal(items)

	newOrder := models.Order{
		ID:      orderID,
		Status:  models.OrderPending,
		Total:   total,
		Method:  req.Method,
		Address: req.Address,
		City:    req.City,
		Phone:   req.Phone,
		Items:   items,
	}
	newOrder.UserID, err = uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, status, total, method, address, city, phone)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		newOrder.ID, newOrder.UserID, newOrder.Status, newOrder.Total,
		newOrder.Method, newOrder.Address, newOrder.City, newOrder.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande", "details": err.Error()})
		return
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, title, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.Title, item.Quantity, item.UnitPrice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande", "details": err.Error()})
			return
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = now() WHERE id = $2`,
			item.Quantity, item.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décrément stock", "details": err.Error()})
			return
		}
	}

	// Paiement simulé : même montant que la commande, statut PENDING
	if _, err := tx.Exec(ctx,
		`INSERT INTO payments (id, order_id, amount, method, status)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), orderID, total, req.Method, models.PaymentPending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement", "details": err.Error()})
		return
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO tracking_history (id, order_id, status, note)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New(), orderID, models.OrderPending, "Commande créée"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création suivi", "details": err.Error()})
		return
	}

	// Le panier est vidé, la ligne carts reste
	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vidage panier", "details": err.Error()})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur transaction", "details": err.Error()})
		return
	}

	// ✅ 3. Fan-out post-commit, best-effort
	sellerProducts := make(map[uuid.UUID][]uuid.UUID)
	for productID, p := range products {
		if p.SellerID != nil {
			sellerProducts[*p.SellerID] = append(sellerProducts[*p.SellerID], productID)
		}
	}
	go utils.NotifyOrderPlaced(newOrder, email, sellerProducts)

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
		"total":    total,
		"status":   models.OrderPending,
	})
}
