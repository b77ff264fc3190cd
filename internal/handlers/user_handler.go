package handlers

import (
	"errors"
	"net/http"

	"storage-control-api/internal/database"
	"storage-control-api/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GetCurrentUser returns the authenticated user's profile (protected)
// GET /api/me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := database.GetDB().Where(&models.User{ID: userID}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}
