package list_schedule_windows

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidServiceID = "некорректный ID услуги"
	msgCompanyNotFound  = "компания не найдена"
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

// Handle GET /api/v1/companies/{companyId}/schedule-windows?serviceId=&onlyCompanyWide=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/schedule-windows - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req := &models.ListWindowsRequest{CompanyID: companyID}

	query := r.URL.Query()
	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /companies/{id}/schedule-windows - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}
	if raw := query.Get("onlyCompanyWide"); raw != "" {
		req.OnlyCompanyWide, _ = strconv.ParseBool(raw)
	}

	result, err := h.service.ListWindows(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/schedule-windows - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		default:
			h.logger.Error("GET /companies/{id}/schedule-windows - Failed to list windows: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/schedule-windows - Fetched %d windows: company_id=%d",
		len(result.Windows), companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
