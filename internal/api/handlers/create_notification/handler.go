package create_notification

import (
	"errors"
	"net/http"

	"github.com/agendahub/AGH-BookingService/internal/api/handlers"
	"github.com/agendahub/AGH-BookingService/internal/service/notifications"
	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoRecipient        = "уведомление должно иметь хотя бы одного получателя"
	msgInvalidInput       = "некорректные данные уведомления"
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

// Handle POST /api/v1/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.NotifyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Notify(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidRecipient):
			h.logger.Warn("POST /notifications - Missing recipient")
			handlers.RespondBadRequest(w, msgNoRecipient)

		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /notifications - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /notifications - Failed to create notification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notifications - Notification created: notification_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
