package update_reservation

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// Request модель запроса на изменение бронирования
// Nil-поля не изменяются
type Request struct {
	ReservationID int64             // ID бронирования
	ClientID      int64             // ID клиента-инициатора (проверка владения)
	Date          *time.Time        // Новая дата (опционально)
	StartTime     *types.TimeString // Новое время начала (опционально)
	Status        *string           // Новый статус (опционально)
	Notes         *string           // Новые заметки (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID        int64            // ID бронирования
	CompanyID int64            // ID компании
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования

	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func fromDomain(r *domain.Reservation) *Response {
	return &Response{
		ID:           r.ID,
		CompanyID:    r.CompanyID,
		ClientID:     r.ClientID,
		ServiceID:    r.ServiceID,
		Date:         r.Date,
		StartTime:    r.StartTime,
		Status:       string(r.Status),
		ServiceName:  r.ServiceName,
		ServicePrice: r.ServicePrice,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
