package product

import (
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 🖼️ POST /api/products/:id/images — multipart, champ "image"
//
func UploadImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadProductImage(ctx, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image", "details": err.Error()})
		return
	}

	// position = suite de la liste existante
	var position int
	_ = database.Pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM product_images WHERE product_id = $1`,
		productID).Scan(&position)

	img := models.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		URL:       url,
		Position:  position,
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO product_images (id, product_id, url, position) VALUES ($1, $2, $3, $4)`,
		img.ID, img.ProductID, img.URL, img.Position); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement image", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, img)
}

//
// ❌ DELETE /api/products/:id/images/:imageId
//
func DeleteImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID image invalide"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	tag, err := database.Pool.Exec(ctx,
		`DELETE FROM product_images WHERE id = $1 AND product_id = $2`, imageID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression image", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée"})
}
