package create_schedule_window

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
	msgInvalidCompanyID   = "некорректный ID компании"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeRange   = "начало окна должно быть раньше конца"
	msgInvalidInput       = "некорректные данные окна"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCompanyNotFound    = "компания не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle POST /api/v1/companies/{companyId}/schedule-windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /companies/{id}/schedule-windows - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies/{id}/schedule-windows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies/{id}/schedule-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), &models.CreateWindowRequest{
		UserID:    userID,
		CompanyID: companyID,
		ServiceID: req.ServiceID,
		Weekdays:  req.Weekdays,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrInvalidTimeRange):
			h.logger.Warn("POST /companies/{id}/schedule-windows - Invalid time range: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /companies/{id}/schedule-windows - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, schedules.ErrCompanyNotFound):
			h.logger.Warn("POST /companies/{id}/schedule-windows - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, schedules.ErrServiceNotFound):
			h.logger.Warn("POST /companies/{id}/schedule-windows - Service not found: service_id=%v", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, schedules.ErrAccessDenied):
			h.logger.Warn("POST /companies/{id}/schedule-windows - Access denied: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /companies/{id}/schedule-windows - Failed to create window: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies/{id}/schedule-windows - Window created: window_id=%d, company_id=%d",
		result.ID, companyID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
