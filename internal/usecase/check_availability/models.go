package check_availability

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// Request модель запроса проверки доступности слота
type Request struct {
	CompanyID int64            // ID компании
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала (например, "09:00")
}

// Response модель ответа с классификацией слота
type Response struct {
	Status domain.SlotStatus // available / outside_working_hours / at_capacity / unknown_service

	// Заполняются, когда услуга найдена
	CapacityLimit int // Вместимость услуги
	ActiveCount   int // Занятые места на дату (pending + confirmed)
}
