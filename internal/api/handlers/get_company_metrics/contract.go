package get_company_metrics

import (
	"context"

	computeMetrics "github.com/agendahub/AGH-BookingService/internal/usecase/compute_metrics"
)

type ComputeMetricsUseCase interface {
	Execute(ctx context.Context, req *computeMetrics.Request) (*computeMetrics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
