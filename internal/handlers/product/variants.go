package product

import (
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🟢 POST /api/products/:id/variants — SELLER/ADMIN
//
func CreateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name       string  `json:"name" binding:"required"`
		Value      string  `json:"value" binding:"required"`
		PriceDelta float64 `json:"priceDelta"`
		Stock      int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	v := models.ProductVariant{
		ID:         uuid.New(),
		ProductID:  productID,
		Name:       input.Name,
		Value:      input.Value,
		PriceDelta: input.PriceDelta,
		Stock:      input.Stock,
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO product_variants (id, product_id, name, value, price_delta, stock)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.ProductID, v.Name, v.Value, v.PriceDelta, v.Stock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création variante", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, v)
}

//
// ✏️ PUT /api/products/:id/variants/:variantId
//
func UpdateVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variante invalide"})
		return
	}

	var input struct {
		Name       *string  `json:"name"`
		Value      *string  `json:"value"`
		PriceDelta *float64 `json:"priceDelta"`
		Stock      *int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Stock != nil && *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	tag, err := database.Pool.Exec(ctx, `
		UPDATE product_variants SET
			name        = COALESCE($1, name),
			value       = COALESCE($2, value),
			price_delta = COALESCE($3, price_delta),
			stock       = COALESCE($4, stock)
		WHERE id = $5 AND product_id = $6`,
		input.Name, input.Value, input.PriceDelta, input.Stock, variantID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour variante", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variante introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variante mise à jour"})
}

//
// ❌ DELETE /api/products/:id/variants/:variantId
//
func DeleteVariant(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID variante invalide"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	tag, err := database.Pool.Exec(ctx,
		`DELETE FROM product_variants WHERE id = $1 AND product_id = $2`, variantID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression variante", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variante introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Variante supprimée"})
}
