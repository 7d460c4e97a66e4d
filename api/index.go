package handler

import (
	"log"
	"net/http"

	"github.com/arnavshah/seatplan-api/pkg/auth"
	"github.com/arnavshah/seatplan-api/pkg/cache"
	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/database"
	"github.com/arnavshah/seatplan-api/pkg/examapi"
	"github.com/arnavshah/seatplan-api/pkg/handlers"
	"github.com/arnavshah/seatplan-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

var r *gin.Engine

func init() {
	cfg := config.Load()

	db := database.InitDB(cfg)
	auth.Init(cfg)
	if err := auth.EnsureAdminExists(db); err != nil {
		log.Printf("could not create admin user: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	client := examapi.NewClient(cfg.ExamAPIBaseURL, examapi.WithTimeout(cfg.ExamAPITimeout))
	r = handlers.NewRouter(&handlers.Handler{
		DB:      db,
		Exams:   cache.NewSnapshotSource(client, cache.NewRedisClient(cfg), cfg.CacheTTL),
		Metrics: metrics.NewRecorder(),
	})
}

// Handler is the entry point for the Vercel Go runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
