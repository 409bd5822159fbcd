package admin

import (
	"log"
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 👥 GET /api/admin/sellers?approved=true|false
//
func GetSellers(c *gin.Context) {
	ctx := c.Request.Context()

	query := `SELECT s.id, s.user_id, s.shop_name, s.approved, s.created_at
	          FROM sellers s`
	args := []any{}
	if approved := c.Query("approved"); approved != "" {
		query += ` WHERE s.approved = $1`
		args = append(args, approved == "true")
	}
	query += ` ORDER BY s.created_at DESC`

	rows, err := database.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture vendeurs", "details": err.Error()})
		return
	}
	defer rows.Close()

	sellers := []models.Seller{}
	for rows.Next() {
		var s models.Seller
		if err := rows.Scan(&s.ID, &s.UserID, &s.ShopName, &s.Approved, &s.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		sellers = append(sellers, s)
	}

	c.JSON(http.StatusOK, gin.H{"sellers": sellers})
}

//
// ✅ PUT /api/admin/sellers/:id/approve
//
func ApproveSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID vendeur invalide"})
		return
	}

	ctx := c.Request.Context()

	var shopName, email string
	err = database.Pool.QueryRow(ctx, `
		SELECT s.shop_name, u.email
		FROM sellers s JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`, sellerID).Scan(&shopName, &email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vendeur introuvable"})
		return
	}

	if _, err := database.Pool.Exec(ctx,
		`UPDATE sellers SET approved = true WHERE id = $1`, sellerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur approbation", "details": err.Error()})
		return
	}

	// email + notification, best-effort
	go func() {
		if err := utils.SendEmail(email, "🎉 Votre boutique est approuvée - Bazar",
			utils.GenerateSellerApprovalHTML(shopName)); err != nil {
			log.Printf("❌ Erreur envoi email approbation: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Vendeur approuvé"})
}

//
// 👥 GET /api/admin/users
//
func GetUsers(c *gin.Context) {
	rows, err := database.Pool.Query(c.Request.Context(),
		`SELECT id, name, email, role, phone, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture utilisateurs", "details": err.Error()})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Phone, &u.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		users = append(users, u)
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
