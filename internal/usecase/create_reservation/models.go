package create_reservation

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CompanyID int64            // ID компании
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Status    *string          // Начальный статус: pending или confirmed (опционально)
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	CompanyID int64            // ID компании
	ClientID  int64            // ID клиента
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования

	// Денормализованные данные
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
