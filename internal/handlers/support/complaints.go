package support

import (
	"context"
	"log"
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/handlers/product"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// 📨 POST /api/complaints — USER
//
func CreateComplaint(c *gin.Context) {
	var input struct {
		Subject string  `json:"subject" binding:"required"`
		Message string  `json:"message" binding:"required"`
		OrderID *string `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	var orderID *uuid.UUID
	if input.OrderID != nil && *input.OrderID != "" {
		oid, err := uuid.Parse(*input.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
			return
		}
		// la commande référencée doit appartenir au plaignant
		var ownerID string
		if err := database.Pool.QueryRow(ctx,
			`SELECT user_id FROM orders WHERE id = $1`, oid).Scan(&ownerID); err != nil || ownerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Commande introuvable ou non autorisée"})
			return
		}
		orderID = &oid
	}

	complaint := models.Complaint{
		ID:      uuid.New(),
		Subject: input.Subject,
		Status:  models.ComplaintOpen,
		OrderID: orderID,
		Thread:  product.AppendThreadBlock("", "Client", input.Message),
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO complaints (id, user_id, order_id, subject, status, thread)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		complaint.ID, userID, complaint.OrderID, complaint.Subject,
		complaint.Status, complaint.Thread); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création réclamation", "details": err.Error()})
		return
	}

	// l'admin est prévenu, best-effort
	go func() {
		if err := utils.PushAdminNotification(context.Background(),
			"Nouvelle réclamation", complaint.Subject); err != nil {
			log.Printf("❌ Erreur notification admin: %v", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{"complaint_id": complaint.ID})
}

// complaintScope retourne la clause WHERE du rôle : un USER voit ses
// réclamations, un SELLER celles dont la commande contient un de ses
// produits, l'ADMIN tout.
func complaintScope(role, userID string) (string, []any) {
	switch role {
	case models.RoleAdmin:
		return ``, nil
	case models.RoleSeller:
		return ` WHERE order_id IN (
			SELECT oi.order_id
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			JOIN sellers s ON s.id = p.seller_id
			WHERE s.user_id = $1)`, []any{userID}
	default:
		return ` WHERE user_id = $1`, []any{userID}
	}
}

// sellerOnComplaint : la réclamation référence une commande contenant
// au moins un produit de ce vendeur.
func sellerOnComplaint(ctx context.Context, userID string, complaintID uuid.UUID) bool {
	var ok bool
	err := database.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM complaints c
			JOIN order_items oi ON oi.order_id = c.order_id
			JOIN products p ON p.id = oi.product_id
			JOIN sellers s ON s.id = p.seller_id
			WHERE c.id = $1 AND s.user_id = $2)`, complaintID, userID).Scan(&ok)
	return err == nil && ok
}

//
// 📨 GET /api/complaints — USER : les siennes, SELLER : celles de ses
// produits, ADMIN : toutes
//
func GetComplaints(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")
	ctx := c.Request.Context()

	where, args := complaintScope(role, userID)
	query := `SELECT id, user_id, order_id, subject, status, thread, created_at, updated_at
	          FROM complaints` + where + ` ORDER BY created_at DESC`

	rows, err := database.Pool.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réclamations", "details": err.Error()})
		return
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		var cp models.Complaint
		if err := rows.Scan(&cp.ID, &cp.UserID, &cp.OrderID, &cp.Subject,
			&cp.Status, &cp.Thread, &cp.CreatedAt, &cp.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage", "details": err.Error()})
			return
		}
		complaints = append(complaints, cp)
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints})
}

//
// 💬 POST /api/complaints/:id/reply
//
// Le client ajoute à son propre fil, le vendeur répond quand la commande
// contient un de ses produits, l'admin répond partout. Chaque bloc est
// signé du rôle.
func ReplyToComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID réclamation invalide"})
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

	var ownerID uuid.UUID
	var thread, status string
	if err := database.Pool.QueryRow(ctx,
		`SELECT user_id, thread, status FROM complaints WHERE id = $1`, complaintID).
		Scan(&ownerID, &thread, &status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Réclamation introuvable"})
		return
	}

	var author string
	switch role {
	case models.RoleAdmin:
		author = "Admin"
	case models.RoleSeller:
		if !sellerOnComplaint(ctx, userID, complaintID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cette réclamation ne concerne aucun de vos produits"})
			return
		}
		author = "Vendeur"
	default:
		if ownerID.String() != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cette réclamation ne vous appartient pas"})
			return
		}
		author = "Client"
	}

	if _, err := database.Pool.Exec(ctx,
		`UPDATE complaints SET thread = $1, updated_at = now() WHERE id = $2`,
		product.AppendThreadBlock(thread, author, input.Message), complaintID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout réponse", "details": err.Error()})
		return
	}

	// prévenir l'autre partie, best-effort
	if author != "Client" {
		if err := utils.PushUserNotification(context.Background(), ownerID,
			"Réponse à votre réclamation", input.Message); err != nil {
			log.Printf("❌ Erreur notification client: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Réponse ajoutée"})
}

//
// ✅ PUT /api/complaints/:id/resolve — ADMIN
//
func ResolveComplaint(c *gin.Context) {
	complaintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID réclamation invalide"})
		return
	}

	tag, err := database.Pool.Exec(c.Request.Context(),
		`UPDATE complaints SET status = $1, updated_at = now() WHERE id = $2`,
		models.ComplaintResolved, complaintID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur résolution", "details": err.Error()})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Réclamation introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Réclamation résolue"})
}
