package handlers

import (
	"context"
	"net/http"
	"time"

	"salon_reports_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db          Pinger
	dataSource  string
	pingTimeout time.Duration
}

// NewHealthHandler creates a HealthHandler. db may be nil when the service runs
// on the in-memory store.
func NewHealthHandler(db Pinger, dataSource string) *HealthHandler {
	return &HealthHandler{db: db, dataSource: dataSource, pingTimeout: 2 * time.Second}
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports ready once the backing store answers.
func (h *HealthHandler) Readyz(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			utils.LogWarn("Readiness check failed: "+err.Error(), map[string]interface{}{"data_source": h.dataSource})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeUnavailable, "Database is not reachable", ""))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "dataSource": h.dataSource})
}
