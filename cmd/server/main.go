package main

import (
	"log"

	"github.com/arnavshah/seatplan-api/pkg/auth"
	"github.com/arnavshah/seatplan-api/pkg/cache"
	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/database"
	"github.com/arnavshah/seatplan-api/pkg/examapi"
	"github.com/arnavshah/seatplan-api/pkg/handlers"
	"github.com/arnavshah/seatplan-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	db := database.InitDB(cfg)
	auth.Init(cfg)
	if err := auth.EnsureAdminExists(db); err != nil {
		log.Printf("could not create admin user: %v", err)
	}

	client := examapi.NewClient(cfg.ExamAPIBaseURL, examapi.WithTimeout(cfg.ExamAPITimeout))
	h := &handlers.Handler{
		DB:      db,
		Exams:   cache.NewSnapshotSource(client, cache.NewRedisClient(cfg), cfg.CacheTTL),
		Metrics: metrics.NewRecorder(),
	}
	r := handlers.NewRouter(h)

	log.Printf("Server starting on port %s (exam api %s)", cfg.Port, client.BaseURL())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
