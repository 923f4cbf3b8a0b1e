package compute_metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
)

// UseCase use case расчета метрик компании
// Метрики нигде не хранятся - каждый запрос агрегирует журнал
// бронирований заново.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute считает помесячную сводку бронирований и выручки компании
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	from, to, err := uc.resolveRange(req)
	if err != nil {
		uc.logger.Warn("ComputeMetrics: range validation failed: %v", err)
		return nil, err
	}

	// Компания должна существовать даже при пустом журнале
	if _, err := uc.catalogRepo.GetCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrCompanyNotFound, req.CompanyID)
		}
		uc.logger.Error("ComputeMetrics: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	aggregates, err := uc.reservationRepo.AggregateMonthly(ctx, req.CompanyID, from, to)
	if err != nil {
		uc.logger.Error("ComputeMetrics: failed to aggregate reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to aggregate reservations: %v", ErrInternal, err)
	}

	uniqueClients, err := uc.reservationRepo.CountDistinctClients(ctx, req.CompanyID, from, to)
	if err != nil {
		uc.logger.Error("ComputeMetrics: failed to count distinct clients: %v", err)
		return nil, fmt.Errorf("%w: failed to count distinct clients: %v", ErrInternal, err)
	}

	metrics := buildMetrics(req.CompanyID, from, to, aggregates, uniqueClients)

	uc.logger.Info("ComputeMetrics: company id=%d, range %s..%s, reservations=%d, revenue=%.2f",
		req.CompanyID, from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		metrics.TotalReservations, metrics.TotalRevenue)

	return fromDomain(metrics), nil
}

// resolveRange возвращает границы диапазона, подставляя значения по умолчанию
// По умолчанию берутся последние DefaultMetricsRangeMonths календарных
// месяцев, включая текущий
func (uc *UseCase) resolveRange(req *Request) (time.Time, time.Time, error) {
	now := uc.timeProvider.Now()

	var from, to time.Time

	if req.EndDate != nil {
		to = *req.EndDate
	} else {
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if req.StartDate != nil {
		from = *req.StartDate
	} else {
		firstOfMonth := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
		from = firstOfMonth.AddDate(0, -(domain.DefaultMetricsRangeMonths - 1), 0)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidRange, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	return from, to, nil
}
