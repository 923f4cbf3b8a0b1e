package get_company_metrics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	computeMetrics "github.com/agendahub/AGH-BookingService/internal/usecase/compute_metrics"
)

const (
	msgInvalidCompanyID = "некорректный ID компании"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange     = "начало диапазона позже конца"
	msgCompanyNotFound  = "компания не найдена"
)

type Handler struct {
	useCase ComputeMetricsUseCase
	logger  Logger
}

func NewHandler(useCase ComputeMetricsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/companies/{companyId}/metrics?startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	companyID, err := strconv.ParseInt(vars["companyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/metrics - Invalid company ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCompanyID)
		return
	}

	req, err := parseQuery(r.URL.Query(), companyID)
	if err != nil {
		h.logger.Warn("GET /companies/{id}/metrics - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, computeMetrics.ErrInvalidRange):
			h.logger.Warn("GET /companies/{id}/metrics - Invalid range: company_id=%d", companyID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, computeMetrics.ErrCompanyNotFound):
			h.logger.Warn("GET /companies/{id}/metrics - Company not found: company_id=%d", companyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, computeMetrics.ErrInvalidInput):
			h.logger.Warn("GET /companies/{id}/metrics - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCompanyID)

		default:
			h.logger.Error("GET /companies/{id}/metrics - Failed to compute metrics: company_id=%d, error=%v",
				companyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /companies/{id}/metrics - Metrics computed: company_id=%d, months=%d",
		companyID, len(result.Monthly))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
