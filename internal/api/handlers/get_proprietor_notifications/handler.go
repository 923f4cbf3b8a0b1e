package get_proprietor_notifications

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/api/middleware"
)

const (
	msgInvalidProprietorID = "некорректный ID владельца"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/proprietors/{proprietorId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	proprietorID, err := strconv.ParseInt(vars["proprietorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /proprietors/{id}/notifications - Invalid proprietor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProprietorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /proprietors/{id}/notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Владелец видит только собственные уведомления
	if userID != proprietorID {
		h.logger.Warn("GET /proprietors/{id}/notifications - Access denied: proprietor_id=%d, user_id=%d",
			proprietorID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetProprietorNotifications(r.Context(), proprietorID)
	if err != nil {
		h.logger.Error("GET /proprietors/{id}/notifications - Failed to fetch: proprietor_id=%d, error=%v",
			proprietorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /proprietors/{id}/notifications - Fetched %d notifications: proprietor_id=%d",
		len(result.Notifications), proprietorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
