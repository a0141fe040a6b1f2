// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/config"
	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	printService *service.PrintService
	config       *config.Config
	logger       *zap.Logger
	startTime    time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(printService *service.PrintService, cfg *config.Config, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		printService: printService,
		config:       cfg,
		logger:       logger.With(zap.String("handler", "health")),
		startTime:    time.Now(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.printService.Status()

	payload := gin.H{
		"service":     h.config.App.Name,
		"version":     h.config.App.Version,
		"environment": h.config.App.Environment,
		"uptime":      time.Since(h.startTime).String(),
		"printer":     status,
	}

	if !status.Usable {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Printer session broken",
			"data":    payload,
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service healthy", payload)
}

// Live handles GET /live; the process is up if it can answer at all.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready handles GET /ready; ready means the printer session is usable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if !h.printService.Status().Usable {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
