package delete_schedule_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/api/middleware"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgWindowNotFound  = "рабочее окно не найдено"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/schedule-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule-windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteWindow(r.Context(), &models.DeleteWindowRequest{
		UserID:   userID,
		WindowID: windowID,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrWindowNotFound):
			h.logger.Warn("DELETE /schedule-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, schedules.ErrCompanyNotFound):
			h.logger.Warn("DELETE /schedule-windows/{id} - Company not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("DELETE /schedule-windows/{id} - Access denied: window_id=%d, user_id=%d",
				windowID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /schedule-windows/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-windows/{id} - Window deleted: window_id=%d, user_id=%d", windowID, userID)
	handlers.RespondNoContent(w)
}
