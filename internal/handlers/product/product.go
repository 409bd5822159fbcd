package product

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"bazar_back_end/internal/cache"
	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// sellerIDForUser retourne l'id vendeur du compte connecté (nil pour un admin,
// qui publie dans le catalogue global).
func sellerIDForUser(ctx context.Context, userID, role string) (*uuid.UUID, error) {
	if role == models.RoleAdmin {
		return nil, nil
	}
	var sellerID uuid.UUID
	if err := database.Pool.QueryRow(ctx,
		`SELECT id FROM sellers WHERE user_id = $1`, userID).Scan(&sellerID); err != nil {
		return nil, err
	}
	return &sellerID, nil
}

// canManageProduct : un vendeur ne touche qu'à ses propres produits,
// l'admin à tout.
func canManageProduct(ctx context.Context, userID, role string, productID uuid.UUID) bool {
	if role == models.RoleAdmin {
		return true
	}
	var n int
	err := database.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products p
		JOIN sellers s ON s.id = p.seller_id
		WHERE p.id = $1 AND s.user_id = $2`, productID, userID).Scan(&n)
	return err == nil && n > 0
}

//
// 🟢 POST /api/products — SELLER ou ADMIN
//
func CreateProduct(c *gin.Context) {
	var input struct {
		CategoryID  string  `json:"categoryId" binding:"required"`
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		Stock       int     `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}
	if input.Price <= 0 || input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix ou stock invalide"})
		return
	}

	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	ctx := c.Request.Context()

	sellerID, err := sellerIDForUser(ctx, c.GetString("user_id"), c.GetString("role"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	p := models.Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO products (id, seller_id, category_id, title, description, price, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.SellerID, p.CategoryID, p.Title, p.Description, p.Price, p.Stock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit", "details": err.Error()})
		return
	}

	services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

//
// 🟢 GET /api/products — liste publique avec filtres
//
func GetProducts(c *gin.Context) {
	categoryID := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := c.Request.Context()

	query := `SELECT id, seller_id, category_id, title, description, price, stock, created_at, updated_at
	          FROM products`
	args := []any{}
	if categoryID != "" {
		if _, err := uuid.Parse(categoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
			return
		}
		query += ` WHERE category_id = $1`
		args = append(args, categoryID)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit) + ` OFFSET ` + strconv.Itoa((page-1)*limit)

	rows, err := database.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits", "details": err.Error()})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description,
			&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "page": page, "limit": limit})
}

//
// 🟢 GET /api/products/:id — fiche complète (images + variantes)
//
func GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := c.Request.Context()

	var p models.Product
	err = database.Pool.QueryRow(ctx,
		`SELECT id, seller_id, category_id, title, description, price, stock, created_at, updated_at
		 FROM products WHERE id = $1`, productID).
		Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description,
			&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit", "details": err.Error()})
		return
	}

	imgRows, err := database.Pool.Query(ctx,
		`SELECT id, product_id, url, position FROM product_images
		 WHERE product_id = $1 ORDER BY position`, productID)
	if err == nil {
		for imgRows.Next() {
			var img models.ProductImage
			if imgRows.Scan(&img.ID, &img.ProductID, &img.URL, &img.Position) == nil {
				p.Images = append(p.Images, img)
			}
		}
		imgRows.Close()
	}

	varRows, err := database.Pool.Query(ctx,
		`SELECT id, product_id, name, value, price_delta, stock FROM product_variants
		 WHERE product_id = $1`, productID)
	if err == nil {
		for varRows.Next() {
			var v models.ProductVariant
			if varRows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Value, &v.PriceDelta, &v.Stock) == nil {
				p.Variants = append(p.Variants, v)
			}
		}
		varRows.Close()
	}

	c.JSON(http.StatusOK, p)
}

//
// ✏️ PUT /api/products/:id
//
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		CategoryID  *string  `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()

	if !canManageProduct(ctx, c.GetString("user_id"), c.GetString("role"), productID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
		return
	}

	if input.Price != nil && *input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}
	if input.Stock != nil && *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	var categoryID *uuid.UUID
	if input.CategoryID != nil {
		cid, err := uuid.Parse(*input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
			return
		}
		categoryID = &cid
	}

	tag, err := database.Pool.Exec(ctx, `
		UPDATE products SET
			title       = COALESCE($1, title),
			description = COALESCE($2, description),
			price       = COALESCE($3, price),
			stock       = COALESCE($4, stock),
			category_id = COALESCE($5, category_id),
			updated_at  = now()
		WHERE id = $6`,
		input.Title, input.Description, input.Price, input.Stock, categoryID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, productID.String())

	// Réindexation avec les valeurs à jour
	var p models.Product
	if err := database.Pool.QueryRow(ctx,
		`SELECT id, category_id, title, description, price FROM products WHERE id = $1`, productID).
		Scan(&p.ID, &p.CategoryID, &p.Title, &p.Description, &p.Price); err == nil {
		services.IndexProduct(p)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour"})
}

//
// ❌ DELETE /api/products/:id
//
func DeleteProduct(c *gin.Context) {
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

	tag, err := database.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, productID.String())
	services.RemoveProductFromIndex(productID.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
