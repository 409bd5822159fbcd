package admin

import (
	"net/http"

	"bazar_back_end/internal/cache"
	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

type adminDashboard struct {
	TotalUsers     int            `json:"total_users"`
	TotalSellers   int            `json:"total_sellers"`
	TotalProducts  int            `json:"total_products"`
	TotalOrders    int            `json:"total_orders"`
	Revenue        float64        `json:"revenue"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	OpenComplaints int            `json:"open_complaints"`
}

//
// 📊 GET /api/dashboard/admin — agrégats globaux, cache Redis 60s
//
func GetAdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var dash adminDashboard
	if cache.GetDashboard(ctx, "admin", &dash) {
		c.JSON(http.StatusOK, gin.H{"dashboard": dash, "cached": true})
		return
	}

	dash.OrdersByStatus = map[string]int{}

	if err := database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&dash.TotalUsers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur agrégation", "details": err.Error()})
		return
	}
	_ = database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sellers`).Scan(&dash.TotalSellers)
	_ = database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&dash.TotalProducts)
	_ = database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM complaints WHERE status = $1`, models.ComplaintOpen).Scan(&dash.OpenComplaints)

	rows, err := database.Pool.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders GROUP BY status`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur agrégation", "details": err.Error()})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var sum float64
		if err := rows.Scan(&status, &count, &sum); err != nil {
			continue
		}
		dash.OrdersByStatus[status] = count
		dash.TotalOrders += count
		if status != models.OrderCancelled && status != models.OrderPaymentFailed {
			dash.Revenue += sum
		}
	}

	cache.SetDashboard(ctx, "admin", dash)

	c.JSON(http.StatusOK, gin.H{"dashboard": dash, "cached": false})
}

//
// 📊 GET /api/dashboard/seller — agrégats du vendeur connecté
//
func GetSellerDashboard(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	var sellerID string
	if err := database.Pool.QueryRow(ctx,
		`SELECT id FROM sellers WHERE user_id = $1`, userID).Scan(&sellerID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	var totalProducts, totalOrders int
	var revenue float64

	_ = database.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&totalProducts)

	// part de revenu du vendeur : somme de ses lignes de commande
	err := database.Pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT oi.order_id), COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE p.seller_id = $1 AND o.status NOT IN ($2, $3)`,
		sellerID, models.OrderCancelled, models.OrderPaymentFailed).Scan(&totalOrders, &revenue)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur agrégation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_products": totalProducts,
		"total_orders":   totalOrders,
		"revenue":        revenue,
	})
}

//
// 📊 GET /api/dashboard/user — commandes par statut
//
func GetUserDashboard(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	rows, err := database.Pool.Query(ctx,
		`SELECT status, COUNT(*) FROM orders WHERE user_id = $1 GROUP BY status`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur agrégation", "details": err.Error()})
		return
	}
	defer rows.Close()

	byStatus := map[string]int{}
	total := 0
	for rows.Next() {
		var status string
		var count int
		if rows.Scan(&status, &count) == nil {
			byStatus[status] = count
			total += count
		}
	}

	c.JSON(http.StatusOK, gin.H{"total_orders": total, "orders_by_status": byStatus})
}
