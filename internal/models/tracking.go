package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackingEntry est une ligne d'historique de statut, append-only.
type TrackingEntry struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
