package compute_metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	"github.com/agendahub/AGH-BookingService/internal/usecase/compute_metrics"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	aggregates    []reservationRepo.MonthlyAggregate
	uniqueClients int

	gotFrom, gotTo time.Time
}

func (f *fakeReservationRepo) AggregateMonthly(_ context.Context, _ int64, from, to time.Time) ([]reservationRepo.MonthlyAggregate, error) {
	f.gotFrom, f.gotTo = from, to
	return f.aggregates, nil
}

func (f *fakeReservationRepo) CountDistinctClients(context.Context, int64, time.Time, time.Time) (int, error) {
	return f.uniqueClients, nil
}

type fakeCatalogRepo struct {
	companies map[int64]*domain.Company
}

func (f *fakeCatalogRepo) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, companyRepo.ErrCompanyNotFound
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newUseCase(reservations *fakeReservationRepo, now time.Time) *compute_metrics.UseCase {
	catalog := &fakeCatalogRepo{companies: map[int64]*domain.Company{1: {ID: 1}}}
	return compute_metrics.NewUseCase(reservations, catalog, fixedTimeProvider{now: now}, nopLogger{})
}

func TestExecute_ZeroFillsEmptyMonths(t *testing.T) {
	reservations := &fakeReservationRepo{
		// Бронирования есть только в феврале
		aggregates: []reservationRepo.MonthlyAggregate{
			{Year: 2026, Month: 2, Reservations: 1, Revenue: 150},
		},
		uniqueClients: 1,
	}
	uc := newUseCase(reservations, date(2026, time.March, 31))

	from := date(2026, time.January, 1)
	to := date(2026, time.March, 31)

	resp, err := uc.Execute(context.Background(), &compute_metrics.Request{
		CompanyID: 1,
		StartDate: &from,
		EndDate:   &to,
	})
	require.NoError(t, err)

	require.Len(t, resp.Monthly, 3, "one row per calendar month, gaps included")
	assert.Equal(t, "2026-01", resp.Monthly[0].Month)
	assert.Equal(t, 0, resp.Monthly[0].Reservations)
	assert.Equal(t, "2026-02", resp.Monthly[1].Month)
	assert.Equal(t, 1, resp.Monthly[1].Reservations)
	assert.Equal(t, 150.0, resp.Monthly[1].Revenue)
	assert.Equal(t, "2026-03", resp.Monthly[2].Month)
	assert.Equal(t, 0, resp.Monthly[2].Reservations)

	assert.Equal(t, 1, resp.TotalReservations)
	assert.Equal(t, 150.0, resp.TotalRevenue)
	assert.Equal(t, 1, resp.UniqueClients)
}

func TestExecute_DefaultRangeIsSixMonths(t *testing.T) {
	reservations := &fakeReservationRepo{}
	uc := newUseCase(reservations, date(2026, time.August, 29))

	resp, err := uc.Execute(context.Background(), &compute_metrics.Request{CompanyID: 1})
	require.NoError(t, err)

	// Шесть календарных месяцев, включая текущий: март..август
	assert.Equal(t, date(2026, time.March, 1), resp.StartDate)
	assert.Equal(t, date(2026, time.August, 29), resp.EndDate)
	require.Len(t, resp.Monthly, 6)
	assert.Equal(t, "2026-03", resp.Monthly[0].Month)
	assert.Equal(t, "2026-08", resp.Monthly[5].Month)
}

func TestExecute_RangeCrossesYearBoundary(t *testing.T) {
	reservations := &fakeReservationRepo{}
	uc := newUseCase(reservations, date(2026, time.February, 10))

	resp, err := uc.Execute(context.Background(), &compute_metrics.Request{CompanyID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Monthly, 6)
	assert.Equal(t, "2025-09", resp.Monthly[0].Month)
	assert.Equal(t, "2026-02", resp.Monthly[5].Month)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newUseCase(&fakeReservationRepo{}, date(2026, time.August, 29))

	from := date(2026, time.May, 1)
	to := date(2026, time.April, 1)

	_, err := uc.Execute(context.Background(), &compute_metrics.Request{
		CompanyID: 1,
		StartDate: &from,
		EndDate:   &to,
	})
	assert.ErrorIs(t, err, compute_metrics.ErrInvalidRange)
}

func TestExecute_CompanyNotFound(t *testing.T) {
	uc := newUseCase(&fakeReservationRepo{}, date(2026, time.August, 29))

	_, err := uc.Execute(context.Background(), &compute_metrics.Request{CompanyID: 42})
	assert.ErrorIs(t, err, compute_metrics.ErrCompanyNotFound)
}

func TestExecute_InvalidCompanyID(t *testing.T) {
	uc := newUseCase(&fakeReservationRepo{}, date(2026, time.August, 29))

	_, err := uc.Execute(context.Background(), &compute_metrics.Request{CompanyID: 0})
	assert.ErrorIs(t, err, compute_metrics.ErrInvalidInput)
}
