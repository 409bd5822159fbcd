package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ComplaintOpen     = "OPEN"
	ComplaintResolved = "RESOLVED"
)

// Complaint est un fil de support : les réponses sont concaténées dans
// le champ Thread, même mécanisme que les reviews.
type Complaint struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Subject   string     `json:"subject"`
	Status    string     `json:"status"`
	Thread    string     `json:"thread"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
