package create_reservation

import (
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reqDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if reqDate.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return nil
}

// resolveStatus определяет начальный статус бронирования
// Пустой запрос использует статус по умолчанию из конфигурации
func resolveStatus(requested *string, defaultStatus domain.ReservationStatus) (domain.ReservationStatus, error) {
	if requested == nil || *requested == "" {
		return defaultStatus, nil
	}

	status := domain.ReservationStatus(*requested)
	switch status {
	case domain.StatusPending, domain.StatusConfirmed:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, *requested)
	}
}

// timeInsideAnyWindow проверяет попадание времени в одно из окон
func timeInsideAnyWindow(t types.TimeString, windows []*domain.ScheduleWindow) bool {
	for _, window := range windows {
		if window.Contains(t) {
			return true
		}
	}
	return false
}
