package models

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
)

// Request модели

// CreateWindowRequest запрос на создание рабочего окна
// Пустой ServiceID создает общее окно компании
type CreateWindowRequest struct {
	UserID    int64    `json:"userId"`
	CompanyID int64    `json:"companyId"`
	ServiceID *int64   `json:"serviceId,omitempty"`
	Weekdays  []string `json:"weekdays"`  // ["mon", "tue", ...]
	StartTime string   `json:"startTime"` // "08:00"
	EndTime   string   `json:"endTime"`   // "12:00"
}

// ListWindowsRequest запрос на получение рабочих окон компании
type ListWindowsRequest struct {
	CompanyID       int64  `json:"companyId"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	OnlyCompanyWide bool   `json:"onlyCompanyWide,omitempty"`
}

// DeleteWindowRequest запрос на удаление рабочего окна
type DeleteWindowRequest struct {
	UserID   int64 `json:"userId"`
	WindowID int64 `json:"windowId"`
}

// Response модели

// WindowResponse ответ с данными рабочего окна
type WindowResponse struct {
	ID        int64    `json:"id"`
	CompanyID int64    `json:"companyId"`
	ServiceID *int64   `json:"serviceId,omitempty"`
	Weekdays  []string `json:"weekdays"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком рабочих окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// OrphanResponse ответ со списком осиротевших окон
// Окно считается осиротевшим, если его компания или услуга удалены
type OrphanResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.ScheduleWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		ServiceID: w.ServiceID,
		Weekdays:  w.Weekdays.Tags(),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.ScheduleWindow) *WindowListResponse {
	resp := &WindowListResponse{
		Windows: make([]WindowResponse, 0, len(windows)),
	}

	for _, window := range windows {
		if converted := FromDomainWindow(window); converted != nil {
			resp.Windows = append(resp.Windows, *converted)
		}
	}

	return resp
}
