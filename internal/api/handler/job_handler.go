package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/baotrn/jobboard-be/internal/api/middleware"
	"github.com/baotrn/jobboard-be/internal/api/search"
	"github.com/gin-gonic/gin"
)

// SearchJobs handles GET /api/v1/jobs
// Runs the faceted search over published postings. Malformed filter
// values never fail the request; the affected dimension is simply not
// applied.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	criteria := search.ParseCriteria(c.Request.URL.Query())
	viewer := viewerFrom(c)

	resp, err := h.service.Search(c.Request.Context(), criteria, viewer, middleware.RequestIDFrom(c))
	if err != nil {
		h.logger.Error("Failed to search jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search jobs",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJob handles GET /api/v1/jobs/:job_id
// Returns the shaped detail view of one published posting.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil || jobID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id must be a positive integer",
		})
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), jobID, viewerFrom(c))
	if errors.Is(err, domain.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Job not found",
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get job",
			slog.Int64("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// HeroStats handles GET /api/v1/stats/hero
// Counts published jobs, seekers, employers and distinct hiring
// companies. An absent published param means published-only; a present
// one is strict boolean: only 1/true/yes/on count as true, anything
// else switches to counting all postings.
func (h *JobHandler) HeroStats(c *gin.Context) {
	publishedOnly := true
	if raw := c.Query("published"); raw != "" {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "1", "true", "yes", "on":
			publishedOnly = true
		default:
			publishedOnly = false
		}
	}

	stats, err := h.service.HeroStats(c.Request.Context(), publishedOnly)
	if err != nil {
		h.logger.Error("Failed to load hero stats", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// viewerFrom extracts the optional authenticated viewer set by the auth
// middleware. Anonymous requests yield nil.
func viewerFrom(c *gin.Context) *domain.Viewer {
	value, ok := c.Get(middleware.ViewerKey)
	if !ok {
		return nil
	}
	viewer, ok := value.(domain.Viewer)
	if !ok {
		return nil
	}
	return &viewer
}
