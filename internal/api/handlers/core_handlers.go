package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/trayd-platform/trayd_service/internal/infrastructure/cache"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/database"
	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// CoreHandler serves liveness and readiness probes.
type CoreHandler struct {
	db     *sqlx.DB
	cache  *cache.Client
	logger *logger.Logger
}

func NewCoreHandler(db *sqlx.DB, cacheClient *cache.Client, log *logger.Logger) *CoreHandler {
	return &CoreHandler{db: db, cache: cacheClient, logger: log}
}

// Health reports liveness.
// GET /health
func (h *CoreHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness of the storage dependencies. Redis is optional;
// only the database gates readiness.
// GET /ready
func (h *CoreHandler) Ready(c *gin.Context) {
	checks := gin.H{"database": "ok"}
	status := http.StatusOK

	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Error("readiness database check failed", "error", err)
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		checks["redis"] = "ok"
		if err := h.cache.HealthCheck(c.Request.Context()); err != nil {
			h.logger.Warn("readiness redis check failed", "error", err)
			checks["redis"] = "unavailable"
		}
	}

	c.JSON(status, checks)
}
