package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsongrid/backend/internal/services"
)

const Version = "1.0.0"

type HealthController struct {
	sessionStore *services.SessionStore
}

func NewHealthController(sessionStore *services.SessionStore) *HealthController {
	return &HealthController{sessionStore: sessionStore}
}

// Health reports liveness; the engine has no external dependencies to check.
func (hc *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
		"services": gin.H{
			"sessions": gin.H{
				"status": "ok",
				"active": hc.sessionStore.Count(),
			},
		},
	})
}
