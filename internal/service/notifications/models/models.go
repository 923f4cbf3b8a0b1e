package models

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// Request модели

// NotifyRequest запрос на создание уведомления
// Хотя бы один из получателей (ClientID, ProprietorID) обязателен
type NotifyRequest struct {
	ClientID      *int64 `json:"clientId,omitempty"`
	ProprietorID  *int64 `json:"proprietorId,omitempty"`
	Message       string `json:"message"`
	Type          string `json:"type"` // info, warning, error
	ReservationID *int64 `json:"reservationId,omitempty"`
}

// UpdateSettingsRequest запрос на изменение настроек напоминаний компании
type UpdateSettingsRequest struct {
	UserID    int64  `json:"userId"`
	CompanyID int64  `json:"companyId"`
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"` // daily
	SendTime  string `json:"sendTime"`  // "09:00"
}

// Response модели

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID            int64  `json:"id"`
	ClientID      *int64 `json:"clientId,omitempty"`
	ProprietorID  *int64 `json:"proprietorId,omitempty"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	ReservationID *int64 `json:"reservationId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// SettingsResponse ответ с настройками напоминаний компании
type SettingsResponse struct {
	CompanyID int64  `json:"companyId"`
	Enabled   bool   `json:"enabled"`
	Frequency string `json:"frequency"`
	SendTime  string `json:"sendTime"`
}

// Методы конвертации

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:            n.ID,
		ClientID:      n.ClientID,
		ProprietorID:  n.ProprietorID,
		Message:       n.Message,
		Type:          string(n.Type),
		ReservationID: n.ReservationID,
		CreatedAt:     n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(notifications []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(notifications)),
	}

	for _, notification := range notifications {
		if converted := FromDomainNotification(notification); converted != nil {
			resp.Notifications = append(resp.Notifications, *converted)
		}
	}

	return resp
}

// FromDomainSettings конвертирует настройки в DTO
func FromDomainSettings(s *domain.NotificationSettings) *SettingsResponse {
	return &SettingsResponse{
		CompanyID: s.CompanyID,
		Enabled:   s.Enabled,
		Frequency: string(s.Frequency),
		SendTime:  s.SendTime.String(),
	}
}
