package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campusnet/internal/app/models/dto"
	"github.com/yigit/campusnet/internal/pkg/logger"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HomeController serves the welcome and health endpoints
type HomeController struct {
	db Pinger
}

// NewHomeController creates a new HomeController. db may be nil for the in-memory store.
func NewHomeController(db Pinger) *HomeController {
	return &HomeController{db: db}
}

// Home returns the welcome message
// @Summary Welcome
// @Tags home
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router / [get]
func (c *HomeController) Home(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Welcome to CampusNet API!"})
}

// Health reports liveness of the service and its database
// @Summary Health check
// @Tags home
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HomeController) Health(ctx *gin.Context) {
	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
