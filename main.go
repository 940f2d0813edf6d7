package main

import (
	"net/http"
	"time"

	"github.com/bellapacxx/bingo-engine/config"
	"github.com/bellapacxx/bingo-engine/controllers"
	"github.com/bellapacxx/bingo-engine/game"
	"github.com/bellapacxx/bingo-engine/routes"
	"github.com/bellapacxx/bingo-engine/services"
	"github.com/bellapacxx/bingo-engine/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg config.Config, hub *services.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket session feed
	r.GET("/ws/:id", hub.HandleWebSocket)

	return r
}

func main() {
	cfg := config.Load()

	// The database is an adapter: without DATABASE_URL the engine runs
	// fully in-memory with no balances and no finished-game records.
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = config.SetupDatabase(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("Failed to connect to DB: %v", err)
		}
		logger.Info("Database connected and migrated")
	} else {
		logger.Info("DATABASE_URL not set, running without persistence")
	}

	registry := game.NewRegistry(cfg.Game)
	store := services.NewGameStore(db)
	hub := services.NewHub(registry, store)
	controllers.Init(registry, hub, store)

	router := setupRouter(cfg, hub)

	logger.Infof("Bingo engine server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
