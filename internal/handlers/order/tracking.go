package order

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/skip2/go-qrcode"
)

// lookupErrorStatus classe une erreur de lecture : 404 quand la ligne
// n'existe pas, 500 pour tout le reste, 0 quand tout va bien.
func lookupErrorStatus(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// canSeeOrder factorise le contrôle d'accès des routes de suivi.
func canSeeOrder(c *gin.Context, orderID uuid.UUID) bool {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	ctx := c.Request.Context()

	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleSeller:
		return sellerHasProductInOrder(ctx, userID, orderID)
	default:
		var ownerID string
		err := database.Pool.QueryRow(ctx,
			`SELECT user_id FROM orders WHERE id = $1`, orderID).Scan(&ownerID)
		return err == nil && ownerID == userID
	}
}

//
// 📍 GET /api/orders/:id/tracking
//
func GetTracking(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	if !canSeeOrder(c, orderID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	rows, err := database.Pool.Query(c.Request.Context(),
		`SELECT id, order_id, status, note, created_at
		 FROM tracking_history WHERE order_id = $1
		 ORDER BY created_at ASC`, orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture suivi", "details": err.Error()})
		return
	}
	defer rows.Close()

	entries := []models.TrackingEntry{}
	for rows.Next() {
		var e models.TrackingEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Note, &e.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		entries = append(entries, e)
	}

	c.JSON(http.StatusOK, gin.H{"tracking": entries})
}

//
// 🔳 GET /api/orders/:id/qr — QR code PNG vers la page de suivi
//
func GetTrackingQR(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	if !canSeeOrder(c, orderID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé"})
		return
	}

	var exists bool
	err = database.Pool.QueryRow(c.Request.Context(),
		`SELECT true FROM orders WHERE id = $1`, orderID).Scan(&exists)
	switch lookupErrorStatus(err) {
	case http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	case http.StatusInternalServerError:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commande", "details": err.Error()})
		return
	}

	frontend := os.Getenv("FRONTEND_ORIGIN")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/orders/%s/tracking", frontend, orderID), qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR", "details": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
