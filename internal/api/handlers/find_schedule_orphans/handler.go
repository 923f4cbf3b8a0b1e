package find_schedule_orphans

import (
	"net/http"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/schedule-orphans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.FindOrphans(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule-orphans - Failed to scan: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/schedule-orphans - Scan finished, found %d orphans", len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
