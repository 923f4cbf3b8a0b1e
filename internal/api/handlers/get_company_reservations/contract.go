package get_company_reservations

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetCompanyReservations(ctx context.Context, req *models.GetCompanyReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
