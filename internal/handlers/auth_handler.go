package handlers

import (
	"errors"
	"net/http"

	"storage-control-api/internal/auth"
	"storage-control-api/internal/database"
	"storage-control-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login handles the login endpoint
// The first login for a username registers it; later logins must match the stored password.
// POST /api/login
func Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Username and password are required.",
		})
		return
	}

	user, created, err := findOrRegister(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate user"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	message := "Login successful"
	if created {
		message = "User registered"
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Message:  message,
	})
}

func findOrRegister(username, password string) (models.User, bool, error) {
	db := database.GetDB()

	var user models.User
	err := db.Where(&models.User{Username: username}).First(&user).Error
	if err == nil {
		if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
			return models.User{}, false, err
		}
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, false, err
	}
	user = models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}
