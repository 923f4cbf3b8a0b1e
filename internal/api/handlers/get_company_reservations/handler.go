package get_company_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/api/middleware"
	"github.com/agendahub/AGH-BookingService/internal/service/reservations"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidQuery     = "некорректные параметры фильтрации"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgCompanyNotFound  = "компания не найдена"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/reservations - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /companies/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := parseQuery(r.URL.Query(), companyID, userID)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetCompanyReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/reservations - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /companies/{id}/reservations - Access denied: company_id=%d, user_id=%d",
				companyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /companies/{id}/reservations - Failed to fetch: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/reservations - Fetched %d reservations: company_id=%d",
		len(result.Reservations), companyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
