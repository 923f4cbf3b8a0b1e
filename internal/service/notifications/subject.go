package notifications

import "github.com/agendahub/AGH-BookingService/internal/domain"

// Темы писем по типу уведомления
const (
	subjectInfo    = "AgendaHub: новое уведомление"
	subjectWarning = "AgendaHub: требуется ваше внимание"
	subjectError   = "AgendaHub: проблема с бронированием"
)

// BuildSubject возвращает тему письма для типа уведомления
// Чистая функция: одинаковый тип всегда дает одинаковую тему
func BuildSubject(notificationType domain.NotificationType) string {
	switch notificationType {
	case domain.NotificationWarning:
		return subjectWarning
	case domain.NotificationError:
		return subjectError
	default:
		return subjectInfo
	}
}
