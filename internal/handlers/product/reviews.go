package product

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppendThreadBlock ajoute un bloc horodaté au fil de discussion.
// Les reviews et les réclamations stockent leurs échanges dans un seul
// champ texte, raccourci assumé plutôt qu'une table de messages.
func AppendThreadBlock(thread, author, message string) string {
	block := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04"), author, strings.TrimSpace(message))
	if thread == "" {
		return block
	}
	return thread + "\n" + block
}

//
// ⭐ POST /api/products/:id/reviews — USER, une review par produit
//
func CreateReview(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La note doit être entre 1 et 5"})
		return
	}

	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	var exists bool
	if err := database.Pool.QueryRow(ctx,
		`SELECT true FROM products WHERE id = $1`, productID).Scan(&exists); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var already uuid.UUID
	if err := database.Pool.QueryRow(ctx,
		`SELECT id FROM reviews WHERE product_id = $1 AND user_id = $2`,
		productID, userID).Scan(&already); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà laissé un avis sur ce produit"})
		return
	}

	review := models.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Rating:    input.Rating,
		Thread:    AppendThreadBlock("", "Client", input.Comment),
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO reviews (id, product_id, user_id, rating, thread) VALUES ($1, $2, $3, $4, $5)`,
		review.ID, review.ProductID, userID, review.Rating, review.Thread); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review_id": review.ID})
}

//
// ⭐ GET /api/products/:id/reviews — public, avec moyenne
//
func GetReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := c.Request.Context()

	rows, err := database.Pool.Query(ctx,
		`SELECT id, product_id, user_id, rating, thread, created_at, updated_at
		 FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis", "details": err.Error()})
		return
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating,
			&r.Thread, &r.CreatedAt, &r.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		reviews = append(reviews, r)
	}

	rating := models.ProductRating{ProductID: productID, TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		rating.AverageRating = float64(sum) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "rating": rating})
}

//
// 💬 POST /api/reviews/:id/reply — vendeur du produit ou admin
//
func ReplyToReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID avis invalide"})
		return
	}

	var input struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message requis"})
		return
	}

	userID := c.GetString("user_id")
	role := c.GetString("role")
	ctx := c.Request.Context()

	var productID uuid.UUID
	var thread string
	if err := database.Pool.QueryRow(ctx,
		`SELECT product_id, thread FROM reviews WHERE id = $1`, reviewID).
		Scan(&productID, &thread); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Avis introuvable"})
		return
	}

	author := "Admin"
	if role == models.RoleSeller {
		if !canManageProduct(ctx, userID, role, productID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Ce produit ne vous appartient pas"})
			return
		}
		author = "Vendeur"
	}

	if _, err := database.Pool.Exec(ctx,
		`UPDATE reviews SET thread = $1, updated_at = now() WHERE id = $2`,
		AppendThreadBlock(thread, author, input.Message), reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout réponse", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Réponse ajoutée"})
}
