package models

import (
	"time"

	"github.com/google/uuid"
)

type Seller struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ShopName  string    `json:"shop_name"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
