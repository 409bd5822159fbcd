package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bazar_back_end/internal/database"
	"bazar_back_end/internal/models"
	"bazar_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ================== AUTH LOCALE ==================

// Register crée un compte acheteur (rôle USER)
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// email déjà pris ?
	var existing string
	err := database.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, input.Email).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:    uuid.New(),
		Name:  input.Name,
		Email: input.Email,
		Role:  models.RoleUser,
		Phone: input.Phone,
	}

	if _, err := database.Pool.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, phone) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, hash, user.Role, user.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur", "details": err.Error()})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// RegisterSeller crée un compte vendeur en attente d'approbation admin
func RegisterSeller(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
		ShopName string `json:"shopName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing string
	err := database.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, input.Email).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création vendeur"})
		return
	}

	userID := uuid.New()
	sellerID := uuid.New()

	// utilisateur + fiche vendeur dans la même transaction
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création vendeur", "details": err.Error()})
		return
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, phone) VALUES ($1, $2, $3, $4, $5, $6)`,
		userID, input.Name, input.Email, hash, models.RoleSeller, input.Phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création vendeur", "details": err.Error()})
		return
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO sellers (id, user_id, shop_name) VALUES ($1, $2, $3)`,
		sellerID, userID, input.ShopName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création vendeur", "details": err.Error()})
		return
	}
	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création vendeur", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Compte vendeur créé, en attente d'approbation",
		"sellerId": sellerID,
	})
}

// Login authentifie tous les rôles. Un vendeur non approuvé est refusé.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, phone FROM users WHERE email = $1`, input.Email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Phone)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && !utils.VerifyPassword(input.Password, user.PasswordHash)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion", "details": err.Error()})
		return
	}

	// Porte d'approbation vendeur
	if user.Role == models.RoleSeller {
		var approved bool
		if err := database.Pool.QueryRow(ctx,
			`SELECT approved FROM sellers WHERE user_id = $1`, user.ID).Scan(&approved); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion", "details": err.Error()})
			return
		}
		if !approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Votre boutique n'a pas encore été approuvée"})
			return
		}
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// Me retourne le profil de l'utilisateur connecté
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Pool.QueryRow(ctx,
		`SELECT id, name, email, role, phone, created_at FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Phone, &user.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
