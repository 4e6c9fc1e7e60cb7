package handler

import (
	"log/slog"

	"github.com/baotrn/jobboard-be/internal/api/service"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Service   *service.SearchService
	JWTSecret string
}

// JobHandler handles job-search HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	service *service.SearchService
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		service: deps.Service,
	}
}
