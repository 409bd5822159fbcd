package product

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/services"

	"bazar_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Colonnes reconnues dans le CSV d'import. Le mapping se fait sur
// l'en-tête, l'ordre des colonnes est libre.
var importColumns = map[string]bool{
	"id": true, "title": true, "description": true,
	"price": true, "stock": true, "category": true,
}

type importRow struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Stock       int
	Category    string
}

// mapHeader associe chaque colonne connue à son index dans l'en-tête
func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if importColumns[name] {
			cols[name] = i
		}
	}
	return cols
}

// parseImportRow valide une ligne CSV selon le mapping d'en-tête
func parseImportRow(cols map[string]int, record []string) (importRow, error) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := importRow{
		ID:          get("id"),
		Title:       get("title"),
		Description: get("description"),
		Category:    get("category"),
	}

	if row.Title == "" {
		return row, errors.New("titre manquant")
	}
	if row.Category == "" {
		return row, errors.New("catégorie manquante")
	}

	price, err := strconv.ParseFloat(get("price"), 64)
	if err != nil || price <= 0 {
		return row, fmt.Errorf("prix invalide: %q", get("price"))
	}
	row.Price = price

	if raw := get("stock"); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return row, fmt.Errorf("stock invalide: %q", raw)
		}
		row.Stock = stock
	}

	return row, nil
}

//
// 📥 POST /api/admin/products/import — CSV multipart, champ "file"
//
// Pas de transaction globale : chaque ligne passe ou échoue
// indépendamment, le résumé compte les échecs.
func ImportProductsCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier CSV manquant"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier illisible"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "En-tête CSV illisible"})
		return
	}
	cols := mapHeader(header)
	if _, ok := cols["title"]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Colonne 'title' requise"})
		return
	}

	ctx := c.Request.Context()

	var created, updated, failed int
	lineNo := 1

	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		lineNo++

		row, err := parseImportRow(cols, record)
		if err != nil {
			log.Printf("⚠️ Import CSV ligne %d ignorée: %v", lineNo, err)
			failed++
			continue
		}

		categoryID, err := FindOrCreateCategory(ctx, row.Category)
		if err != nil {
			log.Printf("⚠️ Import CSV ligne %d: catégorie: %v", lineNo, err)
			failed++
			continue
		}

		// Correspondance par id explicite, sinon par titre dans le
		// catalogue global
		var productID uuid.UUID
		found := false

		if row.ID != "" {
			if pid, err := uuid.Parse(row.ID); err == nil {
				if err := database.Pool.QueryRow(ctx,
					`SELECT id FROM products WHERE id = $1`, pid).Scan(&productID); err == nil {
					found = true
				}
			}
		}
		if !found {
			err := database.Pool.QueryRow(ctx,
				`SELECT id FROM products WHERE LOWER(title) = LOWER($1) AND seller_id IS NULL`,
				row.Title).Scan(&productID)
			if err == nil {
				found = true
			} else if !errors.Is(err, pgx.ErrNoRows) {
				failed++
				continue
			}
		}

		if found {
			if _, err := database.Pool.Exec(ctx, `
				UPDATE products SET title = $1, description = $2, price = $3, stock = $4,
				       category_id = $5, updated_at = now()
				WHERE id = $6`,
				row.Title, row.Description, row.Price, row.Stock, categoryID, productID); err != nil {
				log.Printf("⚠️ Import CSV ligne %d: update: %v", lineNo, err)
				failed++
				continue
			}
			updated++
		} else {
			productID = uuid.New()
			if _, err := database.Pool.Exec(ctx, `
				INSERT INTO products (id, category_id, title, description, price, stock)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				productID, categoryID, row.Title, row.Description, row.Price, row.Stock); err != nil {
				log.Printf("⚠️ Import CSV ligne %d: insert: %v", lineNo, err)
				failed++
				continue
			}
			created++
		}

		services.IndexProduct(models.Product{
			ID:          productID,
			CategoryID:  categoryID,
			Title:       row.Title,
			Description: row.Description,
			Price:       row.Price,
		})
	}

	log.Printf("📦 Import CSV terminé: %d créés, %d mis à jour, %d échecs", created, updated, failed)

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
		"failed":  failed,
	})
}

//
// 📤 GET /api/admin/products/export — export CSV du catalogue
//
func ExportProductsCSV(c *gin.Context) {
	rows, err := database.Pool.Query(c.Request.Context(), `
		SELECT p.id, p.title, p.description, p.price, p.stock, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur export", "details": err.Error()})
		return
	}
	defer rows.Close()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="products.csv"`)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"id", "title", "description", "price", "stock", "category"})

	for rows.Next() {
		var id uuid.UUID
		var title, description, category string
		var price float64
		var stock int
		if err := rows.Scan(&id, &title, &description, &price, &stock, &category); err != nil {
			continue
		}
		_ = writer.Write([]string{
			id.String(), title, description,
			strconv.FormatFloat(price, 'f', 2, 64),
			strconv.Itoa(stock), category,
		})
	}
}
