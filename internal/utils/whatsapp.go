package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var whatsappClient = &http.Client{Timeout: 10 * time.Second}

// SendWhatsApp pousse un message vers le webhook WhatsApp configuré.
// Best-effort : si WHATSAPP_WEBHOOK_URL est absent, on ne fait rien.
func SendWhatsApp(phone, message string) error {
	webhookURL := os.Getenv("WHATSAPP_WEBHOOK_URL")
	if webhookURL == "" || phone == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	resp, err := whatsappClient.Post(webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook WhatsApp a répondu %d", resp.StatusCode)
	}

	log.Println("📱 Message WhatsApp envoyé à", phone)
	return nil
}
