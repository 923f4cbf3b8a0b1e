package create_company

import (
	"context"

	"github.com/agendahub/AGH-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	CreateCompany(ctx context.Context, req *models.CreateCompanyRequest) (*models.CompanyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
