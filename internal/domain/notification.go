package domain

import (
	"time"

	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// NotificationType represents the severity of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification is a persisted message addressed to a client, a company
// proprietor, or both. At least one recipient must be set.
type Notification struct {
	ID           int64
	ClientID     *int64
	ProprietorID *int64
	Message      string
	Type         NotificationType

	// Бронирование, породившее уведомление (nil для ручных рассылок)
	ReservationID *int64

	// Неизменяемо после создания
	CreatedAt time.Time
}

// HasRecipient returns true if at least one recipient is set
func (n *Notification) HasRecipient() bool {
	return n.ClientID != nil || n.ProprietorID != nil
}

// ReminderFrequency how often the reminder sweep runs
type ReminderFrequency string

const (
	FrequencyDaily ReminderFrequency = "daily"
)

// NotificationSettings per-company reminder configuration.
// When no row exists for a company, reminders default to enabled.
type NotificationSettings struct {
	CompanyID int64
	Enabled   bool
	Frequency ReminderFrequency
	SendTime  types.TimeString // время суток запуска рассылки

	CreatedAt time.Time
	UpdatedAt time.Time
}
