package get_company

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	GetCompany(ctx context.Context, companyID int64) (*models.CompanyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
