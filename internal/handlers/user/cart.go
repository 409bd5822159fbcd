package user

import (
	"context"
	"errors"
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// getOrCreateCart retourne l'id du panier de l'utilisateur, créé au besoin.
// Un seul panier par utilisateur (contrainte UNIQUE sur user_id).
func getOrCreateCart(ctx context.Context, userID string) (uuid.UUID, error) {
	var cartID uuid.UUID
	err := database.Pool.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		cartID = uuid.New()
		_, err = database.Pool.Exec(ctx, `INSERT INTO carts (id, user_id) VALUES ($1, $2)`, cartID, userID)
	}
	return cartID, err
}

//
// 🟢 GET /api/cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	cartID, err := getOrCreateCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier", "details": err.Error()})
		return
	}

	rows, err := database.Pool.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.variant_id, ci.quantity,
		       p.title, p.price + COALESCE(v.price_delta, 0)
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		LEFT JOIN product_variants v ON v.id = ci.variant_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cartID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier", "details": err.Error()})
		return
	}
	defer rows.Close()

	cart := models.Cart{ID: cartID, Items: []models.CartItem{}}
	cart.UserID, _ = uuid.Parse(userID)
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.VariantID,
			&item.Quantity, &item.Title, &item.Price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier", "details": err.Error()})
			return
		}
		cart.Total += item.Price * float64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}

	c.JSON(http.StatusOK, gin.H{"cart_id": cart.ID, "items": cart.Items, "total": cart.Total})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string  `json:"productId" binding:"required"`
		VariantID *string `json:"variantId"`
		Quantity  int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var variantID *uuid.UUID
	if input.VariantID != nil {
		vid, err := uuid.Parse(*input.VariantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID variante invalide"})
			return
		}
		variantID = &vid
	}

	ctx := c.Request.Context()

	// Le produit doit exister
	var stock int
	if err := database.Pool.QueryRow(ctx,
		`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// La variante, si fournie, doit appartenir à ce produit — la FK ne
	// vérifie que son existence, pas l'association
	if variantID != nil {
		var ok bool
		if err := database.Pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM product_variants WHERE id = $1 AND product_id = $2)`,
			*variantID, productID).Scan(&ok); err != nil || !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette variante n'appartient pas à ce produit"})
			return
		}
	}

	cartID, err := getOrCreateCart(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur panier", "details": err.Error()})
		return
	}

	// Ligne existante → on additionne la quantité
	_, err = database.Pool.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		uuid.New(), cartID, productID, variantID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout au panier", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit ajouté au panier"})
}

//
// ✏️ PUT /api/cart/:itemId
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("itemId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	tag, err := database.Pool.Exec(c.Request.Context(), `
		UPDATE cart_items SET quantity = $1
		WHERE id = $2 AND cart_id = (SELECT id FROM carts WHERE user_id = $3)`,
		input.Quantity, itemID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quantité mise à jour"})
}

//
// ❌ DELETE /api/cart/:itemId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("itemId")

	tag, err := database.Pool.Exec(c.Request.Context(), `
		DELETE FROM cart_items
		WHERE id = $1 AND cart_id = (SELECT id FROM carts WHERE user_id = $2)`,
		itemID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé du panier"})
}

//
// 🧹 DELETE /api/cart/clear
//
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if _, err := database.Pool.Exec(c.Request.Context(), `
		DELETE FROM cart_items
		WHERE cart_id = (SELECT id FROM carts WHERE user_id = $1)`, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
