package create_company

import (
	"errors"
	"net/http"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/api/middleware"
	"github.com/agendahub/AGH-BookingService/internal/service/catalog"
	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные компании"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgDuplicateFiscalID  = "компания с таким фискальным номером уже зарегистрирована"
	msgClientNotFound     = "пользователь не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /companies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateCompanyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /companies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCompany(r.Context(), &models.CreateCompanyRequest{
		UserID:   userID,
		Name:     req.Name,
		FiscalID: req.FiscalID,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /companies - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, catalog.ErrDuplicateFiscalID):
			h.logger.Warn("POST /companies - Duplicate fiscal ID: fiscal_id=%s", req.FiscalID)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateFiscalID)

		case errors.Is(err, catalog.ErrClientNotFound):
			h.logger.Warn("POST /companies - Client not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /companies - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /companies - Failed to create company: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /companies - Company created: company_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
