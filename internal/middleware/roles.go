package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles vérifie que le rôle du token figure dans la liste autorisée.
// Les contrôles de propriété (« cette commande m'appartient ») restent
// dans chaque handler.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès refusé pour ce rôle"})
			c.Abort()
			return
		}
		c.Next()
	}
}
