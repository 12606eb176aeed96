package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/curequeue/curequeue-server/internal/config"
	dbpkg "github.com/curequeue/curequeue-server/internal/db"
	"github.com/curequeue/curequeue-server/internal/middleware"
	"github.com/curequeue/curequeue-server/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Redis is optional; without it queue-board reads just hit postgres.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
