package delete_company

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	DeleteCompany(ctx context.Context, req *models.DeleteCompanyRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
