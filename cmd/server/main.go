package main

import (
	"log"

	"storage-control-api/internal/backend"
	"storage-control-api/internal/config"
	"storage-control-api/internal/database"
	"storage-control-api/internal/handlers"
	"storage-control-api/internal/routes"
	"storage-control-api/internal/storage"
)

func main() {
	cfg := config.Load()

	// Users always live in the database; values may live in memory instead
	database.InitDB(cfg.DBPath, cfg.DBLog)
	if cfg.Backend == config.BackendMemory {
		handlers.UseBackend(storage.Direct(backend.NewMemory(backend.Options{ConcurrencySafe: true})))
	}
	log.Printf("Storage backend: %s", cfg.Backend)

	ginRoutes := routes.SetupRoutes()

	log.Printf("Server starting on %s", cfg.Addr)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/me")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /api/storage/:namespace/:key")
	log.Println("  GET    /api/storage/:namespace/:key/record")
	log.Println("  PUT    /api/storage/:namespace/:key")
	log.Println("  DELETE /api/storage/:namespace/:key")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(cfg.Addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
