package update_reservation

import (
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.Status == nil && req.Notes == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Status != nil {
		status := domain.ReservationStatus(*req.Status)
		switch status {
		case domain.StatusPending,
			domain.StatusConfirmed,
			domain.StatusCancelled:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
	}

	return nil
}

// validateDate проверяет, что новая дата бронирования не в прошлом
func validateDate(date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	reqDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if reqDate.Before(today) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	return nil
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
