package main

import (
	"log"
	"time"

	"thakirni-app/config"
	"thakirni-app/database"
	routes "thakirni-app/internal/app/http"
	"thakirni-app/internal/state"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatal(err)
	}

	container, err := state.Open(config.STATE_DIR)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		State:    container,
		Registry: prometheus.NewRegistry(),
	})

	r.Run(":" + config.PORT)
}
