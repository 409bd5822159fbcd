package product

import (
	"net/http"
	"strconv"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

//
// 🔍 GET /api/products/search?q=
//
// Elasticsearch en premier, repli sur un ILIKE Postgres quand Elastic
// n'est pas configuré ou répond en erreur.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	ctx := c.Request.Context()

	if ids, err := services.SearchProductIDs(ctx, query, limit); err == nil {
		products := []models.Product{}
		for _, id := range ids {
			var p models.Product
			if err := database.Pool.QueryRow(ctx,
				`SELECT id, seller_id, category_id, title, description, price, stock, created_at, updated_at
				 FROM products WHERE id = $1`, id).
				Scan(&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description,
					&p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err == nil {
				products = append(products, p)
			}
		}
		c.JSON(http.StatusOK, gin.H{"products": products, "source": "elastic"})
		return
	}

	// Fallback SQL
	rows, err := database.Pool.Query(ctx, `
		SELECT id, seller_id, category_id, title, description, price, stock, created_at, updated_at
		FROM products
		WHERE title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT $2`, query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche", "details": err.Error()})
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

	c.JSON(http.StatusOK, gin.H{"products": products, "source": "sql"})
}

//
// 💡 GET /api/products/suggestions?q=
//
func SuggestProducts(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	ctx := c.Request.Context()

	if titles, err := services.SuggestTitles(ctx, prefix, 10); err == nil {
		c.JSON(http.StatusOK, gin.H{"suggestions": titles})
		return
	}

	rows, err := database.Pool.Query(ctx, `
		SELECT title FROM products
		WHERE title ILIKE $1 || '%'
		ORDER BY title LIMIT 10`, prefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suggestions", "details": err.Error()})
		return
	}
	defer rows.Close()

	suggestions := []string{}
	for rows.Next() {
		var title string
		if rows.Scan(&title) == nil {
			suggestions = append(suggestions, title)
		}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
