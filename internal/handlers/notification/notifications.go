package notification

import (
	"context"
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// recipientFilter construit la clause WHERE selon le rôle du token :
// un USER voit ses notifications, un SELLER celles de sa boutique,
// l'ADMIN la boîte du rôle ADMIN.
func recipientFilter(ctx context.Context, userID, role string) (string, []any, bool) {
	switch role {
	case models.RoleAdmin:
		return `role = $1`, []any{models.RoleAdmin}, true
	case models.RoleSeller:
		var sellerID string
		if err := database.Pool.QueryRow(ctx,
			`SELECT id FROM sellers WHERE user_id = $1`, userID).Scan(&sellerID); err != nil {
			return "", nil, false
		}
		return `seller_id = $1`, []any{sellerID}, true
	default:
		return `user_id = $1`, []any{userID}, true
	}
}

//
// 🔔 GET /api/notifications
//
func GetNotifications(c *gin.Context) {
	ctx := c.Request.Context()

	where, args, ok := recipientFilter(ctx, c.GetString("user_id"), c.GetString("role"))
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	rows, err := database.Pool.Query(ctx,
		`SELECT id, user_id, seller_id, role, title, body, read, created_at
		 FROM notifications WHERE `+where+` ORDER BY created_at DESC LIMIT 100`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture notifications", "details": err.Error()})
		return
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.SellerID, &n.Role,
			&n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		notifications = append(notifications, n)
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

//
// 🔔 GET /api/notifications/unread-count
//
func GetUnreadCount(c *gin.Context) {
	ctx := c.Request.Context()

	where, args, ok := recipientFilter(ctx, c.GetString("user_id"), c.GetString("role"))
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	var count int
	if err := database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE `+where+` AND read = false`, args...).
		Scan(&count); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur comptage", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

//
// ✅ PUT /api/notifications/:id/read
//
func MarkAsRead(c *gin.Context) {
	ctx := c.Request.Context()

	where, args, ok := recipientFilter(ctx, c.GetString("user_id"), c.GetString("role"))
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	args = append(args, c.Param("id"))
	tag, err := database.Pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE `+where+` AND id = $2`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification lue"})
}

//
// ✅ PUT /api/notifications/read-all
//
func MarkAllAsRead(c *gin.Context) {
	ctx := c.Request.Context()

	where, args, ok := recipientFilter(ctx, c.GetString("user_id"), c.GetString("role"))
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	if _, err := database.Pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE `+where, args...); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Toutes les notifications sont lues"})
}
