package process_reminders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	notificationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/notification"
	"github.com/agendahub/AGH-BookingService/internal/usecase/process_reminders"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeReservationRepo моделирует условный захват reminder_sent_at
type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) ListDueReminders(_ context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	var due []*domain.Reservation
	for _, r := range f.reservations {
		if !r.NeedsReminder() {
			continue
		}
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		due = append(due, r)
	}
	return due, nil
}

func (f *fakeReservationRepo) MarkReminderSent(_ context.Context, id int64, sentAt time.Time) (bool, error) {
	r, ok := f.reservations[id]
	if !ok || r.ReminderSentAt != nil {
		return false, nil
	}
	r.ReminderSentAt = &sentAt
	return true, nil
}

// claimedElsewhereRepo эмулирует параллельный прогон, который успевает
// захватить выбранные бронирования между выборкой и условным обновлением
type claimedElsewhereRepo struct {
	*fakeReservationRepo
}

func (r claimedElsewhereRepo) ListDueReminders(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	due, err := r.fakeReservationRepo.ListDueReminders(ctx, from, to)
	for _, reservation := range due {
		sent := sweepNow.Add(-time.Minute)
		reservation.ReminderSentAt = &sent
	}
	return due, err
}

type fakeSettingsRepo struct {
	settings map[int64]*domain.NotificationSettings
	err      error
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context, companyID int64) (*domain.NotificationSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.settings[companyID]; ok {
		return s, nil
	}
	return nil, notificationRepo.ErrSettingsNotFound
}

type fakeNotifier struct {
	notified []int64
	failFor  map[int64]bool
}

func (f *fakeNotifier) NotifyReminder(_ context.Context, r *domain.Reservation) error {
	if f.failFor[r.ID] {
		return errors.New("mail gateway unavailable")
	}
	f.notified = append(f.notified, r.ID)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (p fixedTimeProvider) Now() time.Time { return p.now }

var sweepNow = time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)

func confirmedOn(id int64, date time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		CompanyID: 1,
		ClientID:  7,
		Status:    domain.StatusConfirmed,
		Date:      date,
	}
}

func newUseCase(repo process_reminders.ReservationRepository, settings *fakeSettingsRepo, notifier *fakeNotifier) *process_reminders.UseCase {
	return process_reminders.NewUseCase(
		repo,
		settings,
		notifier,
		passthroughTxManager{},
		fixedTimeProvider{now: sweepNow},
		24,
		nopLogger{},
	)
}

func TestExecute_ClaimsAndNotifies(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, tomorrow),
		2: confirmedOn(2, tomorrow),
	}}
	notifier := &fakeNotifier{}

	resp, err := newUseCase(repo, &fakeSettingsRepo{}, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Claimed)
	assert.Equal(t, 0, resp.Skipped)
	assert.Equal(t, 0, resp.Failed)
	assert.Len(t, notifier.notified, 2)
	assert.NotNil(t, repo.reservations[1].ReminderSentAt)
	assert.NotNil(t, repo.reservations[2].ReminderSentAt)
}

func TestExecute_SecondSweepIsIdempotent(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, tomorrow),
	}}
	notifier := &fakeNotifier{}
	uc := newUseCase(repo, &fakeSettingsRepo{}, notifier)

	first, err := uc.Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Claimed)

	// Повторный прогон ничего не захватывает и не шлет
	second, err := uc.Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Claimed)
	assert.Len(t, notifier.notified, 1, "each reservation gets at most one reminder")
}

func TestExecute_SkipsAlreadyClaimed(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, tomorrow),
	}}
	notifier := &fakeNotifier{}

	// Выборка возвращает бронирование, но к моменту условного обновления
	// его уже забрал другой прогон
	resp, err := newUseCase(claimedElsewhereRepo{repo}, &fakeSettingsRepo{}, notifier).
		Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Claimed)
	assert.Equal(t, 1, resp.Skipped)
	assert.Empty(t, notifier.notified)
}

func TestExecute_SkipsMutedCompanies(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	optedOut := confirmedOn(1, tomorrow)
	active := confirmedOn(2, tomorrow)
	active.CompanyID = 2
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: optedOut,
		2: active,
	}}
	settings := &fakeSettingsRepo{settings: map[int64]*domain.NotificationSettings{
		1: {CompanyID: 1, Enabled: false},
	}}
	notifier := &fakeNotifier{}

	resp, err := newUseCase(repo, settings, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Claimed)
	assert.Equal(t, 1, resp.Muted)
	assert.Equal(t, []int64{2}, notifier.notified, "opted-out company gets no reminder")
	// Захват не происходит: бронирование отключённой компании не трогается
	assert.Nil(t, repo.reservations[1].ReminderSentAt)
	assert.NotNil(t, repo.reservations[2].ReminderSentAt)
}

func TestExecute_SettingsErrorDoesNotAbortSweep(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, tomorrow),
	}}
	settings := &fakeSettingsRepo{err: errors.New("connection refused")}
	notifier := &fakeNotifier{}

	resp, err := newUseCase(repo, settings, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	// Недоступные настройки трактуются как включённая рассылка
	assert.Equal(t, 1, resp.Claimed)
	assert.Len(t, notifier.notified, 1)
}

func TestExecute_MailFailureDoesNotReleaseClaim(t *testing.T) {
	tomorrow := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, tomorrow),
	}}
	notifier := &fakeNotifier{failFor: map[int64]bool{1: true}}

	resp, err := newUseCase(repo, &fakeSettingsRepo{}, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Claimed)
	assert.Equal(t, 1, resp.Failed)
	// Захват не откатывается: повторная доставка не предпринимается
	assert.NotNil(t, repo.reservations[1].ReminderSentAt)
}

func TestExecute_IgnoresReservationsOutsideWindow(t *testing.T) {
	nextWeek := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: confirmedOn(1, nextWeek),
	}}
	notifier := &fakeNotifier{}

	resp, err := newUseCase(repo, &fakeSettingsRepo{}, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Claimed)
	assert.Empty(t, notifier.notified)
}

func TestExecute_WindowBoundaries(t *testing.T) {
	repo := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{}}
	notifier := &fakeNotifier{}

	resp, err := newUseCase(repo, &fakeSettingsRepo{}, notifier).Execute(context.Background(), &process_reminders.Request{})
	require.NoError(t, err)

	// Окно обрезано до границ суток: [сегодня 00:00, день(now+24h) 00:00]
	assert.Equal(t, time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC), resp.WindowFrom)
	assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), resp.WindowTo)
}
