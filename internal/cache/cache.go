package cache

import (
	"context"
	"encoding/json"
	"time"

	"bazar_back_end/internal/database"
)

const (
	ProductCacheTTL   = 10 * time.Minute
	DashboardCacheTTL = 60 * time.Second
)

// GetProductTitle récupère un titre de produit depuis Redis, sinon Postgres,
// puis le met en cache.
func GetProductTitle(ctx context.Context, productID string) (string, error) {
	key := "product_title:" + productID

	title, err := database.Redis.Get(ctx, key).Result()
	if err == nil && title != "" {
		return title, nil
	}

	if err := database.Pool.QueryRow(ctx,
		`SELECT title FROM products WHERE id = $1`, productID).Scan(&title); err != nil {
		return "", err
	}

	database.Redis.Set(ctx, key, title, ProductCacheTTL)
	return title, nil
}

// InvalidateProduct invalide le cache d'un produit
func InvalidateProduct(ctx context.Context, productID string) {
	database.Redis.Del(ctx, "product_title:"+productID)
}

// GetDashboard tente de lire un dashboard depuis Redis.
// Retourne false si absent ou illisible.
func GetDashboard(ctx context.Context, key string, dest any) bool {
	data, err := database.Redis.Get(ctx, "dashboard:"+key).Result()
	if err != nil || data == "" {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// SetDashboard met un dashboard en cache pour 60 secondes
func SetDashboard(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, "dashboard:"+key, data, DashboardCacheTTL)
}
