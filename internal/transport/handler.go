package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-brightness-finder/internal/config"
	apperrors "go-brightness-finder/internal/errors"
	"go-brightness-finder/internal/logger"
	"go-brightness-finder/internal/observer"
	"go-brightness-finder/internal/service"
	"go-brightness-finder/pkg/models"
)

// Handler exposes the analysis service over HTTP.
type Handler struct {
	service service.AnalysisService
	metrics *observer.MetricsObserver
	config  *config.Config
}

// NewHandler creates the HTTP handler.
func NewHandler(svc service.AnalysisService, metrics *observer.MetricsObserver, cfg *config.Config) *Handler {
	return &Handler{
		service: svc,
		metrics: metrics,
		config:  cfg,
	}
}

// SetupRoutes registers all routes on a fresh gin engine.
func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	router.Use(requestSizeLimiter(h.config.MaxRequestBodySize))

	router.GET("/health", h.Health)
	router.GET("/metrics", h.Metrics)
	router.POST("/analyze", h.Analyze)
	router.POST("/analyze/detailed", h.AnalyzeDetailed)

	return router
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Metrics returns the session counters collected by the metrics observer.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetMetrics())
}

// Analyze handles POST /analyze: fetch the media at the given URL and
// report the brightest pixel of every frame.
func (h *Handler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	resp, err := h.service.AnalyzeMedia(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeDetailed handles POST /analyze/detailed: the per-frame report
// plus a breakdown of the brightest frame.
func (h *Handler) AnalyzeDetailed(c *gin.Context) {
	var req models.DetailedAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewValidationError("invalid request body", err))
		return
	}

	resp, err := h.service.AnalyzeMediaDetailed(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps application errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := apperrors.GetStatusCode(err)

	message := "internal server error"
	var appErr *apperrors.AppError
	if e, ok := err.(*apperrors.AppError); ok {
		appErr = e
		message = appErr.Message
	}

	entry := logger.WithFields(logrus.Fields{
		"status": status,
		"path":   c.Request.URL.Path,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Warn("Request rejected")
	}

	c.JSON(status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// requestLogger logs each request with method, path, status, and latency.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"client":  c.ClientIP(),
		}).Info("Request handled")
	}
}

// requestSizeLimiter caps request body size before JSON binding reads it.
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
