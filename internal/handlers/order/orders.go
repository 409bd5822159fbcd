package order

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// statusChangeAllowed : l'enum est ouvert, on refuse seulement les
// statuts vides et toute mutation d'une commande déjà livrée.
func statusChangeAllowed(current, next string) bool {
	next = strings.TrimSpace(next)
	if next == "" {
		return false
	}
	return current != models.OrderDelivered
}

// paymentStatusFor : statut de paiement induit par un statut de commande.
// Le paiement simulé suit la commande : livrée → encaissé, annulée ou en
// échec de paiement → échoué.
func paymentStatusFor(orderStatus string) (string, bool) {
	switch orderStatus {
	case models.OrderDelivered:
		return models.PaymentSuccess, true
	case models.OrderCancelled, models.OrderPaymentFailed:
		return models.PaymentFailed, true
	}
	return "", false
}

func loadOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := database.Pool.Query(ctx,
		`SELECT id, order_id, product_id, title, quantity, unit_price
		 FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID,
			&item.Title, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// sellerHasProductInOrder vérifie qu'au moins une ligne de la commande
// provient de ce vendeur.
func sellerHasProductInOrder(ctx context.Context, sellerUserID string, orderID uuid.UUID) bool {
	var n int
	err := database.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN sellers s ON s.id = p.seller_id
		WHERE oi.order_id = $1 AND s.user_id = $2`, orderID, sellerUserID).Scan(&n)
	return err == nil && n > 0
}

//
// ✅ GET /api/orders — commandes de l'utilisateur connecté
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rows, err := database.Pool.Query(ctx,
		`SELECT id, user_id, status, total, method, address, city, phone, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes", "details": err.Error()})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.Method,
			&o.Address, &o.City, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		orders = append(orders, o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// ✅ GET /api/orders/:id
//
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx := c.Request.Context()

	var o models.Order
	err = database.Pool.QueryRow(ctx,
		`SELECT id, user_id, status, total, method, address, city, phone, created_at, updated_at
		 FROM orders WHERE id = $1`, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.Method,
			&o.Address, &o.City, &o.Phone, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande", "details": err.Error()})
		return
	}

	// Contrôle d'accès : propriétaire, admin, ou vendeur concerné
	switch role {
	case models.RoleAdmin:
	case models.RoleSeller:
		if !sellerHasProductInOrder(ctx, userID, orderID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne contient aucun de vos produits"})
			return
		}
	default:
		if o.UserID.String() != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne vous appartient pas"})
			return
		}
	}

	if o.Items, err = loadOrderItems(ctx, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture lignes", "details": err.Error()})
		return
	}

	var payment models.Payment
	err = database.Pool.QueryRow(ctx,
		`SELECT id, order_id, amount, method, status, created_at, updated_at
		 FROM payments WHERE order_id = $1`, orderID).
		Scan(&payment.ID, &payment.OrderID, &payment.Amount, &payment.Method,
			&payment.Status, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusOK, o)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": o, "payment": payment})
}

//
// ✅ GET /api/seller/orders — commandes contenant des produits du vendeur
//
func GetSellerOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rows, err := database.Pool.Query(ctx, `
		SELECT DISTINCT o.id, o.user_id, o.status, o.total, o.method, o.address, o.city, o.phone,
		       o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		JOIN sellers s ON s.id = p.seller_id
		WHERE s.user_id = $1
		ORDER BY o.created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes", "details": err.Error()})
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.Method,
			&o.Address, &o.City, &o.Phone, &o.CreatedAt, &o.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		orders = append(orders, o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// ✏️ PUT /api/orders/:id/status — vendeur ou admin
//
// Statut, ligne de tracking et synchronisation du paiement (SUCCESS quand
// la commande passe à DELIVERED) partent dans la même transaction.
func UpdateOrderStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	input.Status = strings.ToUpper(strings.TrimSpace(input.Status))

	ctx := c.Request.Context()

	if role == models.RoleSeller && !sellerHasProductInOrder(ctx, userID, orderID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cette commande ne contient aucun de vos produits"})
		return
	}

	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur transaction", "details": err.Error()})
		return
	}
	defer tx.Rollback(ctx)

	var o models.Order
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, status, total, phone FROM orders WHERE id = $1 FOR UPDATE`, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.Phone)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande", "details": err.Error()})
		return
	}

	if !statusChangeAllowed(o.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Une commande livrée ne peut plus changer de statut"})
		return
	}

	if _, err := tx.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`,
		input.Status, orderID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut", "details": err.Error()})
		return
	}

	// Toujours une ligne de tracking
	if _, err := tx.Exec(ctx,
		`INSERT INTO tracking_history (id, order_id, status, note) VALUES ($1, $2, $3, $4)`,
		uuid.New(), orderID, input.Status, input.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création suivi", "details": err.Error()})
		return
	}

	// Synchronisation du paiement : livraison → SUCCESS (une seule fois,
	// le WHERE l'assure), annulation ou échec → FAILED, mais seul un
	// paiement encore en attente peut échouer.
	if next, ok := paymentStatusFor(input.Status); ok {
		guard := `status <> $3`
		arg := next
		if next == models.PaymentFailed {
			guard = `status = $3`
			arg = models.PaymentPending
		}
		if _, err := tx.Exec(ctx,
			`UPDATE payments SET status = $1, updated_at = now()
			 WHERE order_id = $2 AND `+guard,
			next, orderID, arg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur synchronisation paiement", "details": err.Error()})
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur transaction", "details": err.Error()})
		return
	}

	// Fan-out best-effort après commit
	var buyerEmail string
	if err := database.Pool.QueryRow(ctx,
		`SELECT email FROM users WHERE id = $1`, o.UserID).Scan(&buyerEmail); err == nil {
		o.Status = input.Status
		go utils.NotifyOrderStatus(o, buyerEmail, input.Status)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "status": input.Status})
}
