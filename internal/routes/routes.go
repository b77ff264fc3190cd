package routes

import (
	"net/http"

	"storage-control-api/internal/handlers"
	"storage-control-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Storage Control API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		protectedRoutes.GET("/me", handlers.GetCurrentUser)
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)

		protectedRoutes.GET("/storage/:namespace/:key", handlers.GetItem)
		protectedRoutes.GET("/storage/:namespace/:key/record", handlers.GetItemRecord)
		protectedRoutes.PUT("/storage/:namespace/:key", handlers.SetItem)
		protectedRoutes.DELETE("/storage/:namespace/:key", handlers.DeleteItem)
	}

	return ginRouter
}
