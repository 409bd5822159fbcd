package models

import "github.com/google/uuid"

type Cart struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Items  []CartItem `json:"items"`
	// Total recalculé à chaque lecture, jamais stocké
	Total float64 `json:"total"`
}

type CartItem struct {
	ID        uuid.UUID  `json:"id"`
	CartID    uuid.UUID  `json:"cart_id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
	// Champs joints pour l'affichage du panier
	Title string  `json:"title,omitempty"`
	Price float64 `json:"price,omitempty"`
}
