package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"bazar_back_end/internal/cache"
	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"

	"github.com/google/uuid"
)

// Insertion des lignes de notification. Une notification vise exactement
// un destinataire : utilisateur, vendeur ou rôle ADMIN. Chaque insertion
// est relayée sur le canal pub/sub du destinataire pour le flux WebSocket.

// NotificationChannel retourne le canal pub/sub Redis d'un destinataire
// ("user:<id>", "seller:<id>" ou "role:ADMIN").
func NotificationChannel(recipient string) string {
	return "notifications:" + recipient
}

// notificationPayload sérialise le message poussé sur le canal pub/sub
func notificationPayload(title, body string) []byte {
	payload, _ := json.Marshal(map[string]string{
		"type":  "notification",
		"title": title,
		"body":  body,
	})
	return payload
}

func publishNotification(ctx context.Context, recipient, title, body string) {
	database.Redis.Publish(ctx, NotificationChannel(recipient), notificationPayload(title, body))
}

func PushUserNotification(ctx context.Context, userID uuid.UUID, title, body string) error {
	_, err := database.Pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, body) VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, title, body)
	if err == nil {
		publishNotification(ctx, "user:"+userID.String(), title, body)
	}
	return err
}

func PushSellerNotification(ctx context.Context, sellerID uuid.UUID, title, body string) error {
	_, err := database.Pool.Exec(ctx,
		`INSERT INTO notifications (id, seller_id, title, body) VALUES ($1, $2, $3, $4)`,
		uuid.New(), sellerID, title, body)
	if err == nil {
		publishNotification(ctx, "seller:"+sellerID.String(), title, body)
	}
	return err
}

func PushAdminNotification(ctx context.Context, title, body string) error {
	_, err := database.Pool.Exec(ctx,
		`INSERT INTO notifications (id, role, title, body) VALUES ($1, $2, $3, $4)`,
		uuid.New(), models.RoleAdmin, title, body)
	if err == nil {
		publishNotification(ctx, "role:"+models.RoleAdmin, title, body)
	}
	return err
}

// sellerOrderBody compose le corps de la notification vendeur en nommant
// les produits vendus quand on les connaît.
func sellerOrderBody(ref string, titles []string) string {
	if len(titles) == 0 {
		return fmt.Sprintf("La commande #%s contient un ou plusieurs de vos produits", ref)
	}
	return fmt.Sprintf("La commande #%s contient : %s", ref, strings.Join(titles, ", "))
}

// NotifyOrderPlaced lance le fan-out post-checkout : notifications in-app
// pour l'acheteur, chaque vendeur concerné et l'admin, e-mail de
// confirmation et webhook WhatsApp. Tout est best-effort, la commande est
// déjà committée quand on arrive ici.
func NotifyOrderPlaced(order models.Order, buyerEmail string, sellerProducts map[uuid.UUID][]uuid.UUID) {
	ctx := context.Background()
	ref := order.ID.String()[:8]

	if err := PushUserNotification(ctx, order.UserID,
		"Commande enregistrée",
		fmt.Sprintf("Votre commande #%s (%.2f€) a bien été enregistrée", ref, order.Total)); err != nil {
		log.Printf("❌ Erreur notification acheteur: %v", err)
	}

	for sellerID, productIDs := range sellerProducts {
		// les titres passent par le cache Redis, une commande en notifie
		// souvent plusieurs d'affilée
		var titles []string
		for _, pid := range productIDs {
			title, err := cache.GetProductTitle(ctx, pid.String())
			if err != nil {
				log.Printf("⚠️ Titre produit %s introuvable: %v", pid, err)
				continue
			}
			titles = append(titles, title)
		}
		if err := PushSellerNotification(ctx, sellerID,
			"Nouvelle commande", sellerOrderBody(ref, titles)); err != nil {
			log.Printf("❌ Erreur notification vendeur %s: %v", sellerID, err)
		}
	}

	if err := PushAdminNotification(ctx,
		"Nouvelle commande",
		fmt.Sprintf("Commande #%s de %.2f€", ref, order.Total)); err != nil {
		log.Printf("❌ Erreur notification admin: %v", err)
	}

	if err := SendEmail(buyerEmail, "✅ Confirmation de votre commande - Bazar",
		GenerateOrderConfirmationHTML(order)); err != nil {
		log.Printf("❌ Erreur envoi email confirmation: %v", err)
	}

	for _, admin := range AdminEmails() {
		if err := SendEmail(admin, "🛒 Nouvelle commande - Bazar",
			GenerateOrderConfirmationHTML(order)); err != nil {
			log.Printf("❌ Erreur envoi email admin %s: %v", admin, err)
		}
	}

	if err := SendWhatsApp(order.Phone,
		fmt.Sprintf("Bazar : votre commande #%s de %.2f€ est enregistrée ✅", ref, order.Total)); err != nil {
		log.Printf("❌ Erreur webhook WhatsApp: %v", err)
	}
}

// NotifyOrderStatus reprend le même schéma best-effort pour un changement
// de statut.
func NotifyOrderStatus(order models.Order, buyerEmail, newStatus string) {
	ctx := context.Background()
	ref := order.ID.String()[:8]

	if err := PushUserNotification(ctx, order.UserID,
		"Commande "+newStatus,
		fmt.Sprintf("Votre commande #%s est passée au statut %s", ref, newStatus)); err != nil {
		log.Printf("❌ Erreur notification statut: %v", err)
	}

	if err := SendEmail(buyerEmail,
		fmt.Sprintf("%s Mise à jour de votre commande - Bazar", StatusIcon(newStatus)),
		GenerateStatusEmailHTML(order, newStatus)); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
	}

	if err := SendWhatsApp(order.Phone,
		fmt.Sprintf("Bazar : commande #%s → %s", ref, newStatus)); err != nil {
		log.Printf("❌ Erreur webhook WhatsApp: %v", err)
	}
}

// AdminEmails retourne la liste ADMIN_EMAILS (séparée par des virgules)
func AdminEmails() []string {
	raw := os.Getenv("ADMIN_EMAILS")
	if raw == "" {
		return nil
	}
	var out []string
	for _, e := range strings.Split(raw, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
