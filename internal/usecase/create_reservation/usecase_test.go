package create_reservation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	"github.com/agendahub/AGH-BookingService/internal/usecase/create_reservation"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
	"github.com/agendahub/AGH-BookingService/pkg/txmanager"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeReservationRepo хранит созданные бронирования в памяти
type fakeReservationRepo struct {
	mu      sync.Mutex
	nextID  int64
	created []*domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeReservationRepo) CountForServiceAndDate(_ context.Context, serviceID int64, date time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.created {
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

type fakeCatalogRepo struct {
	companies map[int64]*domain.Company
	services  map[int64]*domain.Service
	clients   map[int64]*domain.Client
}

func (f *fakeCatalogRepo) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, companyRepo.ErrCompanyNotFound
}

func (f *fakeCatalogRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, companyRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) GetClient(_ context.Context, id int64) (*domain.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, companyRepo.ErrClientNotFound
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeNotifier) NotifyReservationCreated(context.Context, *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil
}

// passthroughTxManager выполняет fn без транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// conflictTxManager всегда завершается конфликтом сериализации
type conflictTxManager struct{}

func (conflictTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrSerializationConflict
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

// 2026-08-31 - понедельник
var monday = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

func mustWeekdays(t *testing.T, s string) domain.WeekdaySet {
	t.Helper()
	set, err := domain.ParseWeekdaySet(s)
	require.NoError(t, err)
	return set
}

type fixture struct {
	uc           *create_reservation.UseCase
	reservations *fakeReservationRepo
	notifier     *fakeNotifier
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	reservations := &fakeReservationRepo{}
	schedules := &fakeScheduleRepo{windows: []*domain.ScheduleWindow{
		{CompanyID: 1, Weekdays: mustWeekdays(t, "mon,tue,wed,thu,fri"), StartTime: "09:00", EndTime: "18:00"},
	}}
	catalog := &fakeCatalogRepo{
		companies: map[int64]*domain.Company{1: {ID: 1, ProprietorID: 50}},
		services: map[int64]*domain.Service{
			10: {ID: 10, CompanyID: 1, Name: "Haircut", Price: 150, CapacityLimit: capacity},
		},
		clients: map[int64]*domain.Client{7: {ID: 7, Role: domain.RoleClient}},
	}
	notifier := &fakeNotifier{}

	uc := create_reservation.NewUseCase(
		reservations,
		schedules,
		catalog,
		notifier,
		passthroughTxManager{},
		fixedTimeProvider{now: monday.AddDate(0, 0, -7)},
		true,
		domain.StatusConfirmed,
		nopLogger{},
	)

	return &fixture{uc: uc, reservations: reservations, notifier: notifier}
}

func validRequest() *create_reservation.Request {
	return &create_reservation.Request{
		CompanyID: 1,
		ClientID:  7,
		ServiceID: 10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
	}
}

func TestExecute_CreatesReservation(t *testing.T) {
	f := newFixture(t, 2)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// Денормализация на момент создания
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 150.0, resp.ServicePrice)
	assert.Equal(t, 1, f.notifier.calls, "notification is dispatched after commit")
}

func TestExecute_ExplicitPendingStatus(t *testing.T) {
	f := newFixture(t, 2)

	req := validRequest()
	req.Status = ptr.Ptr("pending")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_RejectsCancelledInitialStatus(t *testing.T) {
	f := newFixture(t, 2)

	req := validRequest()
	req.Status = ptr.Ptr("cancelled")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrInvalidStatus)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	f := newFixture(t, 2)

	req := validRequest()
	req.Date = monday.AddDate(0, 0, -14) // раньше "сегодня" провайдера времени

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrInvalidDate)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture(t, 2)

	req := validRequest()
	req.StartTime = types.TimeString("08:00")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrOutsideWorkingHours)
	assert.Empty(t, f.reservations.created)
}

func TestExecute_CapacityExhausted(t *testing.T) {
	f := newFixture(t, 1)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второе бронирование того же слота упирается в лимит
	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_reservation.ErrSlotNotAvailable)
	assert.Len(t, f.reservations.created, 1)
	assert.Equal(t, 1, f.notifier.calls)
}

// serializingTxManager эмулирует уровень Serializable: транзакции
// конкурирующих горутин выполняются строго по очереди
type serializingTxManager struct {
	mu sync.Mutex
}

func (m *serializingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func TestExecute_ConcurrentDuelForLastSlot(t *testing.T) {
	reservations := &fakeReservationRepo{}
	notifier := &fakeNotifier{}
	uc := create_reservation.NewUseCase(
		reservations,
		&fakeScheduleRepo{windows: []*domain.ScheduleWindow{
			{CompanyID: 1, Weekdays: mustWeekdays(t, "mon"), StartTime: "09:00", EndTime: "18:00"},
		}},
		&fakeCatalogRepo{
			companies: map[int64]*domain.Company{1: {ID: 1, ProprietorID: 50}},
			services: map[int64]*domain.Service{
				10: {ID: 10, CompanyID: 1, Name: "Haircut", Price: 150, CapacityLimit: 1},
			},
			clients: map[int64]*domain.Client{
				7: {ID: 7, Role: domain.RoleClient},
				8: {ID: 8, Role: domain.RoleClient},
			},
		},
		notifier,
		&serializingTxManager{},
		fixedTimeProvider{now: monday.AddDate(0, 0, -7)},
		true,
		domain.StatusConfirmed,
		nopLogger{},
	)

	// Два клиента одновременно претендуют на последний слот
	errs := make(chan error, 2)
	for _, clientID := range []int64{7, 8} {
		go func(clientID int64) {
			req := validRequest()
			req.ClientID = clientID
			_, err := uc.Execute(context.Background(), req)
			errs <- err
		}(clientID)
	}

	var won, lost int
	for i := 0; i < 2; i++ {
		err := <-errs
		switch {
		case err == nil:
			won++
		case errors.Is(err, create_reservation.ErrSlotNotAvailable):
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won, "exactly one create wins the slot")
	assert.Equal(t, 1, lost)
	assert.Len(t, reservations.created, 1)
	assert.Equal(t, 1, notifier.calls)
}

func TestExecute_CancelledReservationFreesSlot(t *testing.T) {
	f := newFixture(t, 1)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Освобождаем слот отменой
	f.reservations.created[0].Status = domain.StatusCancelled
	_ = resp

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err, "cancelled reservations do not occupy the slot")
}

func TestExecute_SerializationConflictSurfacesAsSlotNotAvailable(t *testing.T) {
	f := newFixture(t, 2)

	uc := create_reservation.NewUseCase(
		f.reservations,
		&fakeScheduleRepo{windows: []*domain.ScheduleWindow{
			{CompanyID: 1, Weekdays: mustWeekdays(t, "mon"), StartTime: "09:00", EndTime: "18:00"},
		}},
		&fakeCatalogRepo{
			companies: map[int64]*domain.Company{1: {ID: 1}},
			services:  map[int64]*domain.Service{10: {ID: 10, CompanyID: 1, CapacityLimit: 2}},
			clients:   map[int64]*domain.Client{7: {ID: 7}},
		},
		f.notifier,
		conflictTxManager{},
		fixedTimeProvider{now: monday.AddDate(0, 0, -7)},
		true,
		domain.StatusConfirmed,
		nopLogger{},
	)

	// Исчерпанные попытки сериализуемой транзакции выглядят для клиента
	// как занятый слот, а не как внутренняя ошибка
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, create_reservation.ErrSlotNotAvailable)
	assert.Equal(t, 0, f.notifier.calls)
}

func TestExecute_UnknownEntities(t *testing.T) {
	f := newFixture(t, 2)

	req := validRequest()
	req.CompanyID = 99
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrCompanyNotFound)

	req = validRequest()
	req.ServiceID = 99
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrServiceNotFound)

	req = validRequest()
	req.ClientID = 99
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, create_reservation.ErrClientNotFound)
}
