package process_reminders

import (
	"context"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) (bool, error)
}

// SettingsRepository интерфейс настроек рассылки компаний
type SettingsRepository interface {
	GetSettings(ctx context.Context, companyID int64) (*domain.NotificationSettings, error)
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	NotifyReminder(ctx context.Context, reservation *domain.Reservation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
