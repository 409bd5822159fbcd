package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification est adressée à exactement un destinataire :
// user_id, seller_id ou role (ADMIN). La contrainte CHECK le garantit.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	SellerID  *uuid.UUID `json:"seller_id,omitempty"`
	Role      *string    `json:"role,omitempty"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}
