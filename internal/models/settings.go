package models

import "time"

// StoreSetting est une ligne singleton (id = 1).
type StoreSetting struct {
	StoreName    string    `json:"store_name"`
	LogoURL      string    `json:"logo_url"`
	SupportEmail string    `json:"support_email"`
	Currency     string    `json:"currency"`
	UpdatedAt    time.Time `json:"updated_at"`
}
