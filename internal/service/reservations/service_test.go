package reservations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	"github.com/agendahub/AGH-BookingService/internal/service/reservations"
	"github.com/agendahub/AGH-BookingService/internal/service/reservations/models"
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
		return r, nil
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListByClient(_ context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.ClientID != clientID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) ListByCompany(_ context.Context, filter domain.CompanyReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if r.CompanyID != filter.CompanyID {
			continue
		}
		if !filter.IncludeInactive && !r.IsActive() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, reason string) error {
	r, ok := f.reservations[id]
	if !ok || r.IsCancelled() {
		// Статусный фильтр репозитория не находит уже отменённую строку
		return reservationRepo.ErrReservationNotFound
	}
	now := time.Now()
	r.Status = domain.StatusCancelled
	r.CancellationReason = &reason
	r.CancelledAt = &now
	return nil
}

func (f *fakeReservationRepo) DeleteByClient(_ context.Context, clientID int64) error {
	for id, r := range f.reservations {
		if r.ClientID == clientID {
			delete(f.reservations, id)
		}
	}
	return nil
}

func (f *fakeReservationRepo) DeleteByCompany(_ context.Context, companyID int64) error {
	for id, r := range f.reservations {
		if r.CompanyID == companyID {
			delete(f.reservations, id)
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	companies map[int64]*domain.Company
	clients   map[int64]*domain.Client
}

func (f *fakeCatalogRepo) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, companyRepo.ErrCompanyNotFound
}

func (f *fakeCatalogRepo) GetClient(_ context.Context, id int64) (*domain.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, companyRepo.ErrClientNotFound
}

type fakeNotifier struct {
	cancellations int
}

func (f *fakeNotifier) NotifyReservationCancelled(context.Context, *domain.Reservation, string) error {
	f.cancellations++
	return nil
}

type fixture struct {
	svc      *reservations.Service
	repo     *fakeReservationRepo
	notifier *fakeNotifier
}

func newFixture() *fixture {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {
			ID:        1,
			CompanyID: 1,
			ClientID:  7,
			ServiceID: 10,
			Date:      time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00",
			Status:    domain.StatusConfirmed,
		},
	}}
	catalog := &fakeCatalogRepo{
		companies: map[int64]*domain.Company{1: {ID: 1, ProprietorID: 50}},
		clients:   map[int64]*domain.Client{7: {ID: 7}, 50: {ID: 50}},
	}
	notifier := &fakeNotifier{}

	return &fixture{
		svc:      reservations.NewService(repo, catalog, notifier, nopLogger{}),
		repo:     repo,
		notifier: notifier,
	}
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture()

	// Владелец бронирования
	resp, err := f.svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Владелец компании
	_, err = f.svc.GetByID(context.Background(), 1, 50)
	assert.NoError(t, err)

	// Посторонний пользователь
	_, err = f.svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, reservations.ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 42, 7)
	assert.ErrorIs(t, err, reservations.ErrReservationNotFound)
}

func TestGetClientReservations_OwnHistoryOnly(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
		UserID:   7,
		ClientID: 7,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	_, err = f.svc.GetClientReservations(context.Background(), &models.GetClientReservationsRequest{
		UserID:   50,
		ClientID: 7,
	})
	assert.ErrorIs(t, err, reservations.ErrAccessDenied)
}

func TestGetCompanyReservations_ProprietorOnly(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.GetCompanyReservations(context.Background(), &models.GetCompanyReservationsRequest{
		UserID:    50,
		CompanyID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	_, err = f.svc.GetCompanyReservations(context.Background(), &models.GetCompanyReservationsRequest{
		UserID:    7,
		CompanyID: 1,
	})
	assert.ErrorIs(t, err, reservations.ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             7,
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)

	r := f.repo.reservations[1]
	assert.True(t, r.IsCancelled())
	require.NotNil(t, r.CancellationReason)
	assert.Equal(t, "не смогу прийти", *r.CancellationReason)
	assert.NotNil(t, r.CancelledAt)
	assert.Equal(t, 1, f.notifier.cancellations)
}

func TestCancel_Idempotent(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             7,
		CancellationReason: "первая причина",
	})
	require.NoError(t, err)
	firstCancelledAt := *f.repo.reservations[1].CancelledAt

	// Повторная отмена - успешный no-op, исходные данные отмены не трогаются
	err = f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
		UserID:             7,
		CancellationReason: "вторая причина",
	})
	require.NoError(t, err)

	r := f.repo.reservations[1]
	assert.Equal(t, "первая причина", *r.CancellationReason)
	assert.Equal(t, firstCancelledAt, *r.CancelledAt)
	assert.Equal(t, 1, f.notifier.cancellations, "no duplicate cancellation notification")
}

func TestCancel_AccessDenied(t *testing.T) {
	f := newFixture()

	err := f.svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 99})
	assert.ErrorIs(t, err, reservations.ErrAccessDenied)
	assert.False(t, f.repo.reservations[1].IsCancelled())
}
