package update_reservation

import (
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	updateReservation "github.com/agendahub/AGH-BookingService/internal/usecase/update_reservation"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// UpdateReservationRequest HTTP request model
// Отсутствующие поля не изменяются
type UpdateReservationRequest struct {
	Date      *string `json:"date,omitempty"`      // "2026-03-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	Status    *string `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64   `json:"id"`
	CompanyID    int64   `json:"companyId"`
	ClientID     int64   `json:"clientId"`
	ServiceID    int64   `json:"serviceId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	Status       string  `json:"status"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(reservationID, clientID int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		ReservationID: reservationID,
		ClientID:      clientID,
		Status:        r.Status,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		CompanyID:    resp.CompanyID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		Status:       resp.Status,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
