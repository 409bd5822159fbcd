package notification

import (
	"context"
	"log"
	"net/http"
	"time"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// recipientChannel retourne le canal pub/sub du principal connecté,
// même découpage que recipientFilter.
func recipientChannel(ctx context.Context, userID, role string) (string, bool) {
	switch role {
	case models.RoleAdmin:
		return utils.NotificationChannel("role:" + models.RoleAdmin), true
	case models.RoleSeller:
		var sellerID string
		if err := database.Pool.QueryRow(ctx,
			`SELECT id FROM sellers WHERE user_id = $1`, userID).Scan(&sellerID); err != nil {
			return "", false
		}
		return utils.NotificationChannel("seller:" + sellerID), true
	default:
		return utils.NotificationChannel("user:" + userID), true
	}
}

//
// 🔌 GET /api/notifications/stream — push temps réel via WebSocket
//
func StreamNotifications(c *gin.Context) {
	channel, ok := recipientChannel(c.Request.Context(), c.GetString("user_id"), c.GetString("role"))
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Fiche vendeur introuvable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, channel)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Flux de notifications activé",
	})

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
