package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Version is reported by the root route
const Version = "1.0.0"

// NewRouter registers every route of the service on a new gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Exam Seat Plan API",
			"version": Version,
		})
	})
	r.GET("/healthz", h.Health)
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.DELETE("/exams/:examId/cache", h.ClearExamCache)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/arrange", h.ArrangeJSON)
		api.POST("/arrange/csv", h.ArrangeCSV)
		api.POST("/validate", h.ValidateInput)
		api.GET("/exams/:examId/arrangement", h.ExamArrangement)
		api.GET("/exams/:examId/arrangement/csv", h.ExamArrangementCSV)
		api.GET("/exams/:examId/statistics", h.ExamStatistics)
		api.GET("/exams/:examId/rooms/:roomNo/visualization", h.RoomVisualization)
		api.GET("/exams/:examId/seats", h.FindSeat)
		api.GET("/usage", h.GetMyUsage)
	}

	return r
}
