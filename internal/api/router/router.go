package router

import (
	"net/http"

	"github.com/baotrn/jobboard-be/internal/api/handler"
	"github.com/baotrn/jobboard-be/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware(deps.Logger))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Logger))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobboard-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			// GET /api/v1/jobs - faceted search with pagination
			jobs.GET("", jobHandler.SearchJobs)

			// GET /api/v1/jobs/:job_id - job detail
			jobs.GET("/:job_id", jobHandler.GetJob)
		}

		stats := v1.Group("/stats")
		{
			// GET /api/v1/stats/hero - landing page counters
			stats.GET("/hero", jobHandler.HeroStats)
		}
	}

	return r
}
