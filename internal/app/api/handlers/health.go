package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/natashawa225/sea-catering/internal/platform/db"
)

type HealthStatus struct {
	Status string `json:"status"`
	// Store is the circuit breaker state in front of the database: closed, half-open or open.
	Store string `json:"store"`
}

// @Summary      Health check
// @Description  Returns service status and the state of the store circuit breaker
// @Tags         System
// @Produce      json
// @Success      200  {object}  handlers.RespHealth
// @Router       /healthz [get]
func Healthz(guard *db.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		replyOK(c, &HealthStatus{Status: "ok", Store: guard.State().String()})
	}
}

func RegisterHealthRoutes(r gin.IRouter, guard *db.Guard) {
	r.GET("/healthz", Healthz(guard))
}
