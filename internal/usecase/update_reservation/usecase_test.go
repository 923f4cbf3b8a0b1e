package update_reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	"github.com/agendahub/AGH-BookingService/internal/usecase/update_reservation"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
	"github.com/agendahub/AGH-BookingService/pkg/txmanager"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	if r, ok := f.reservations[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) Update(_ context.Context, r *domain.Reservation) error {
	if _, ok := f.reservations[r.ID]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.UpdatedAt = time.Now()
	copied := *r
	f.reservations[r.ID] = &copied
	return nil
}

func (f *fakeReservationRepo) CountForServiceAndDate(_ context.Context, serviceID int64, date time.Time) (int, error) {
	count := 0
	for _, r := range f.reservations {
		if r.ServiceID == serviceID && r.Date.Equal(date) && r.IsActive() {
			count++
		}
	}
	return count, nil
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
		if filter.ServiceID != nil {
			if w.ServiceID == nil || *w.ServiceID != *filter.ServiceID {
				continue
			}
		}
		if filter.Weekday != nil && !w.AppliesTo(*filter.Weekday) {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, companyRepo.ErrServiceNotFound
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type conflictTxManager struct{}

func (conflictTxManager) DoSerializable(context.Context, func(context.Context) error) error {
	return txmanager.ErrSerializationConflict
}

type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time { return f.now }

func mustWeekdays(t *testing.T, s string) domain.WeekdaySet {
	t.Helper()
	set, err := domain.ParseWeekdaySet(s)
	require.NoError(t, err)
	return set
}

var (
	// Понедельник и вторник покрываются одним сервисным окном
	monday  = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	now     = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc   *update_reservation.UseCase
	repo *fakeReservationRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {
			ID:        1,
			CompanyID: 1,
			ClientID:  7,
			ServiceID: 10,
			Date:      monday,
			StartTime: "10:00",
			Status:    domain.StatusConfirmed,
		},
	}}
	schedules := &fakeScheduleRepo{windows: []*domain.ScheduleWindow{
		{
			ID:        1,
			CompanyID: 1,
			ServiceID: ptr.Ptr(int64(10)),
			Weekdays:  mustWeekdays(t, "mon,tue"),
			StartTime: "09:00",
			EndTime:   "18:00",
		},
	}}
	catalog := &fakeCatalogRepo{services: map[int64]*domain.Service{
		10: {ID: 10, CompanyID: 1, Name: "Haircut", CapacityLimit: 1},
	}}

	uc := update_reservation.NewUseCase(
		repo, schedules, catalog,
		passthroughTxManager{}, fixedTimeProvider{now: now}, true, nopLogger{})
	return &fixture{uc: uc, repo: repo}
}

func TestExecute_UpdateNotes(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Notes:         ptr.Ptr("прийти пораньше"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "прийти пораньше", *resp.Notes)
	// Слот не менялся
	assert.Equal(t, monday, resp.Date)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecute_MoveTimeWithinDay_SelfSlotNotCounted(t *testing.T) {
	f := newFixture(t)

	// Лимит услуги 1 и единственное бронирование - своё же.
	// Перенос времени внутри дня не должен упереться в собственный слот
	resp, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		StartTime:     ptr.Ptr(types.TimeString("14:00")),
	})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
}

func TestExecute_MoveToOccupiedDate(t *testing.T) {
	f := newFixture(t)
	f.repo.reservations[2] = &domain.Reservation{
		ID:        2,
		CompanyID: 1,
		ClientID:  8,
		ServiceID: 10,
		Date:      tuesday,
		StartTime: "11:00",
		Status:    domain.StatusConfirmed,
	}

	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Date:          ptr.Ptr(tuesday),
	})
	assert.ErrorIs(t, err, update_reservation.ErrSlotNotAvailable)
}

func TestExecute_MoveToFreeDate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Date:          ptr.Ptr(tuesday),
	})
	require.NoError(t, err)
	assert.Equal(t, tuesday, resp.Date)
}

func TestExecute_MoveOutsideWorkingHours(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		StartTime:     ptr.Ptr(types.TimeString("20:00")),
	})
	assert.ErrorIs(t, err, update_reservation.ErrOutsideWorkingHours)

	// Конец окна не входит в интервал
	_, err = f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		StartTime:     ptr.Ptr(types.TimeString("18:00")),
	})
	assert.ErrorIs(t, err, update_reservation.ErrOutsideWorkingHours)
}

func TestExecute_StatusTransitions(t *testing.T) {
	f := newFixture(t)

	// confirmed -> pending запрещен машиной состояний
	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Status:        ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, update_reservation.ErrInvalidStatusTransition)

	// confirmed -> cancelled разрешен
	resp, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Status:        ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	// Отмена через изменение статуса фиксирует момент отмены
	stored := f.repo.reservations[1]
	require.NotNil(t, stored.CancelledAt)
	assert.Equal(t, now, *stored.CancelledAt)
}

func TestExecute_CancelledNotEditable(t *testing.T) {
	f := newFixture(t)
	f.repo.reservations[1].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Notes:         ptr.Ptr("уже поздно"),
	})
	assert.ErrorIs(t, err, update_reservation.ErrReservationNotEditable)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      99,
		Notes:         ptr.Ptr("чужое бронирование"),
	})
	assert.ErrorIs(t, err, update_reservation.ErrAccessDenied)
}

func TestExecute_PastDate(t *testing.T) {
	f := newFixture(t)

	past := now.AddDate(0, 0, -1)
	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Date:          ptr.Ptr(past),
	})
	assert.ErrorIs(t, err, update_reservation.ErrInvalidDate)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	// Пустой запрос - нечего менять
	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
	})
	assert.ErrorIs(t, err, update_reservation.ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		Status:        ptr.Ptr("finished"),
	})
	assert.ErrorIs(t, err, update_reservation.ErrInvalidInput)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 42,
		ClientID:      7,
		Notes:         ptr.Ptr("note"),
	})
	assert.ErrorIs(t, err, update_reservation.ErrReservationNotFound)
}

func TestExecute_SerializationConflict(t *testing.T) {
	f := newFixture(t)
	uc := update_reservation.NewUseCase(
		f.repo,
		&fakeScheduleRepo{},
		&fakeCatalogRepo{},
		conflictTxManager{}, fixedTimeProvider{now: now}, true, nopLogger{})

	_, err := uc.Execute(context.Background(), &update_reservation.Request{
		ReservationID: 1,
		ClientID:      7,
		StartTime:     ptr.Ptr(types.TimeString("14:00")),
	})
	assert.ErrorIs(t, err, update_reservation.ErrSlotNotAvailable)
}
