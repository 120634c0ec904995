package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog/internal/application/dataset/usecases"
	"catalog/internal/domain/storage"
	"catalog/internal/infrastructure/database"
	"catalog/internal/shared/logger"
)

// StatusProber probes the permission service.
type StatusProber interface {
	Status(ctx context.Context) storage.SystemStatus
}

// StatusHandler reports the health of the catalog and of every system it
// depends on.
type StatusHandler struct {
	services usecases.StorageServices
	sam      StatusProber
	logger   logger.Interface
}

func NewStatusHandler(services usecases.StorageServices, sam StatusProber, logger logger.Interface) *StatusHandler {
	return &StatusHandler{
		services: services,
		sam:      sam,
		logger:   logger,
	}
}

type statusResponse struct {
	OK      bool                            `json:"ok"`
	Systems map[string]storage.SystemStatus `json:"systems"`
}

// GetStatus probes the database, the permission service and each storage
// system, and aggregates the results. Any unhealthy subsystem turns the
// response into a 503.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	systems := make(map[string]storage.SystemStatus, len(h.services)+2)

	dbStatus := storage.SystemStatus{OK: true}
	if err := database.Ping(); err != nil {
		dbStatus = storage.SystemStatus{OK: false, Message: err.Error()}
	}
	systems["database"] = dbStatus

	if h.sam != nil {
		systems["sam"] = h.sam.Status(ctx)
	}

	for system, svc := range h.services {
		systems[system.Name()] = svc.Status(ctx)
	}

	allOK := true
	for name, status := range systems {
		if !status.OK {
			allOK = false
			h.logger.Warnw("subsystem unhealthy", "subsystem", name, "message", status.Message)
		}
	}

	code := http.StatusOK
	if !allOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, statusResponse{OK: allOK, Systems: systems})
}
