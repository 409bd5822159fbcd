package product

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Slugify normalise un nom de catégorie en slug URL
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	lastDash := true // évite un tiret en tête
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// FindOrCreateCategory recherche une catégorie sans tenir compte de la
// casse, et la crée au besoin. Utilisé par l'import CSV.
func FindOrCreateCategory(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := database.Pool.QueryRow(ctx,
		`SELECT id FROM categories WHERE LOWER(name) = LOWER($1)`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, err
	}

	id = uuid.New()
	_, err = database.Pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`,
		id, strings.TrimSpace(name), Slugify(name))
	return id, err
}

//
// 🟢 GET /api/categories — public
//
func GetCategories(c *gin.Context) {
	rows, err := database.Pool.Query(c.Request.Context(),
		`SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories", "details": err.Error()})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

//
// 🟢 POST /api/admin/categories — ADMIN
//
func CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom requis"})
		return
	}

	ctx := c.Request.Context()

	var existing uuid.UUID
	if err := database.Pool.QueryRow(ctx,
		`SELECT id FROM categories WHERE LOWER(name) = LOWER($1)`, input.Name).Scan(&existing); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cette catégorie existe déjà"})
		return
	}

	cat := models.Category{ID: uuid.New(), Name: strings.TrimSpace(input.Name), Slug: Slugify(input.Name)}
	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)`,
		cat.ID, cat.Name, cat.Slug); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création catégorie", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

//
// ✏️ PUT /api/admin/categories/:id — ADMIN
//
func UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom requis"})
		return
	}

	tag, err := database.Pool.Exec(c.Request.Context(),
		`UPDATE categories SET name = $1, slug = $2 WHERE id = $3`,
		strings.TrimSpace(input.Name), Slugify(input.Name), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour catégorie", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie mise à jour"})
}

//
// ❌ DELETE /api/admin/categories/:id — ADMIN
//
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID catégorie invalide"})
		return
	}

	ctx := c.Request.Context()

	// refuser si des produits y sont rattachés
	var n int
	if err := database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n); err == nil && n > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Des produits utilisent encore cette catégorie"})
		return
	}

	tag, err := database.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression catégorie", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
