package delete_service

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	DeleteService(ctx context.Context, req *models.DeleteServiceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
