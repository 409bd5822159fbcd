package admin

import (
	"net/http"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// ⚙️ GET /api/settings — public, ligne singleton
//
func GetSettings(c *gin.Context) {
	var s models.StoreSetting
	err := database.Pool.QueryRow(c.Request.Context(),
		`SELECT store_name, logo_url, support_email, currency, updated_at
		 FROM store_settings WHERE id = 1`).
		Scan(&s.StoreName, &s.LogoURL, &s.SupportEmail, &s.Currency, &s.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture paramètres", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s)
}

//
// ⚙️ PUT /api/admin/settings — ADMIN
//
func UpdateSettings(c *gin.Context) {
	var input struct {
		StoreName    *string `json:"store_name"`
		LogoURL      *string `json:"logo_url"`
		SupportEmail *string `json:"support_email"`
		Currency     *string `json:"currency"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if _, err := database.Pool.Exec(c.Request.Context(), `
		UPDATE store_settings SET
			store_name    = COALESCE($1, store_name),
			logo_url      = COALESCE($2, logo_url),
			support_email = COALESCE($3, support_email),
			currency      = COALESCE($4, currency),
			updated_at    = now()
		WHERE id = 1`,
		input.StoreName, input.LogoURL, input.SupportEmail, input.Currency); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour paramètres", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Paramètres mis à jour"})
}
