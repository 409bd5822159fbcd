package models

import (
	"time"

	"github.com/google/uuid"
)

// Statuts de commande. Enum ouvert : la colonne accepte d'autres valeurs,
// seules les transitions passent par UpdateOrderStatus.
const (
	OrderPending       = "PENDING"
	OrderProcessing    = "PROCESSING"
	OrderShipped       = "SHIPPED"
	OrderDelivered     = "DELIVERED"
	OrderCancelled     = "CANCELLED"
	OrderPaymentFailed = "PAYMENT_FAILED"
)

type Order struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	Method    string      `json:"method"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Phone     string      `json:"phone"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem fige le prix unitaire au moment du checkout,
// il n'est jamais recalculé ensuite.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}
