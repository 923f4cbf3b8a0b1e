package check_availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	"github.com/agendahub/AGH-BookingService/internal/usecase/check_availability"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, companyRepo.ErrServiceNotFound
	}
	return service, nil
}

type fakeScheduleRepo struct {
	windows []*domain.ScheduleWindow
}

func (f *fakeScheduleRepo) List(_ context.Context, filter domain.ScheduleWindowsFilter) ([]*domain.ScheduleWindow, error) {
	var result []*domain.ScheduleWindow
	for _, w := range f.windows {
		if w.CompanyID != filter.CompanyID {
			continue
		}
		if filter.OnlyCompanyWide && !w.IsCompanyWide() {
			continue
		}
		if filter.ServiceID != nil && (w.ServiceID == nil || *w.ServiceID != *filter.ServiceID) {
			continue
		}
		if filter.Weekday != nil && !w.AppliesTo(*filter.Weekday) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

type fakeReservationRepo struct {
	count int
}

func (f *fakeReservationRepo) CountForServiceAndDate(context.Context, int64, time.Time) (int, error) {
	return f.count, nil
}

func mustWeekdays(t *testing.T, s string) domain.WeekdaySet {
	t.Helper()
	set, err := domain.ParseWeekdaySet(s)
	require.NoError(t, err)
	return set
}

// 2026-08-31 - понедельник
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
var tuesday = monday.AddDate(0, 0, 1)

func newFixture(t *testing.T, fallback bool, count int) *check_availability.UseCase {
	t.Helper()

	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		10: {ID: 10, CompanyID: 1, Name: "Haircut", CapacityLimit: 2},
	}}
	schedules := &fakeScheduleRepo{windows: []*domain.ScheduleWindow{
		{
			ID:        100,
			CompanyID: 1,
			Weekdays:  mustWeekdays(t, "mon,wed,fri"),
			StartTime: "09:00",
			EndTime:   "18:00",
		},
	}}
	reservations := &fakeReservationRepo{count: count}

	return check_availability.NewUseCase(catalog, schedules, reservations, fallback, nopLogger{})
}

func TestExecute_AvailableInsideCompanyWindow(t *testing.T) {
	uc := newFixture(t, true, 0)

	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("09:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailable, resp.Status)
	assert.Equal(t, 2, resp.CapacityLimit)
	assert.Equal(t, 0, resp.ActiveCount)
	assert.True(t, resp.Status.IsBookable())
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newFixture(t, true, 0)

	// Вторник не входит в mon,wed,fri
	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      tuesday,
		StartTime: types.TimeString("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOutsideWorkingHours, resp.Status)

	// Понедельник, но до открытия
	resp, err = uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("08:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOutsideWorkingHours, resp.Status)

	// Конец окна эксклюзивен
	resp, err = uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("18:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOutsideWorkingHours, resp.Status)
}

func TestExecute_AtCapacity(t *testing.T) {
	uc := newFixture(t, true, 2)

	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAtCapacity, resp.Status)
	assert.Equal(t, 2, resp.ActiveCount)
	assert.False(t, resp.Status.IsBookable())
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newFixture(t, true, 0)

	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 999,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotUnknownService, resp.Status)
}

func TestExecute_ServiceOfAnotherCompany(t *testing.T) {
	uc := newFixture(t, true, 0)

	// Услуга существует, но принадлежит другой компании
	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 2,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotUnknownService, resp.Status)
}

func TestExecute_FallbackDisabled(t *testing.T) {
	// Без fallback общие окна компании не спасают услугу без собственных окон
	uc := newFixture(t, false, 0)

	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOutsideWorkingHours, resp.Status)
}

func TestExecute_ServiceWindowsTakePrecedence(t *testing.T) {
	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		10: {ID: 10, CompanyID: 1, CapacityLimit: 1},
	}}
	serviceID := int64(10)
	schedules := &fakeScheduleRepo{windows: []*domain.ScheduleWindow{
		// Общее окно компании на весь день
		{CompanyID: 1, Weekdays: mustWeekdays(t, "mon"), StartTime: "08:00", EndTime: "20:00"},
		// Узкое окно услуги
		{CompanyID: 1, ServiceID: &serviceID, Weekdays: mustWeekdays(t, "mon"), StartTime: "10:00", EndTime: "12:00"},
	}}
	uc := check_availability.NewUseCase(catalog, schedules, &fakeReservationRepo{}, true, nopLogger{})

	// 09:00 попадает в общее окно, но не в окно услуги:
	// при наличии собственных окон услуги общие не учитываются
	resp, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotOutsideWorkingHours, resp.Status)

	resp, err = uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, resp.Status)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newFixture(t, true, 0)

	_, err := uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 0,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	})
	assert.ErrorIs(t, err, check_availability.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &check_availability.Request{
		CompanyID: 1,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("25:00"),
	})
	assert.ErrorIs(t, err, check_availability.ErrInvalidInput)
}
