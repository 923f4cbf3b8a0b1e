package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	notificationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/notification"
	"github.com/agendahub/AGH-BookingService/internal/service/notifications"
	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeNotificationRepo struct {
	nextID   int64
	created  []*domain.Notification
	settings map[int64]*domain.NotificationSettings
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListByClient(_ context.Context, clientID int64) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for _, n := range f.created {
		if n.ClientID != nil && *n.ClientID == clientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) ListByProprietor(_ context.Context, proprietorID int64) ([]*domain.Notification, error) {
	var result []*domain.Notification
	for _, n := range f.created {
		if n.ProprietorID != nil && *n.ProprietorID == proprietorID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) GetSettings(_ context.Context, companyID int64) (*domain.NotificationSettings, error) {
	if s, ok := f.settings[companyID]; ok {
		return s, nil
	}
	return nil, notificationRepo.ErrSettingsNotFound
}

func (f *fakeNotificationRepo) UpsertSettings(_ context.Context, s *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if f.settings == nil {
		f.settings = make(map[int64]*domain.NotificationSettings)
	}
	f.settings[s.CompanyID] = s
	return s, nil
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

type nopMailClient struct{}

func (nopMailClient) Send(context.Context, string, string, string) error { return nil }

func newService(repo *fakeNotificationRepo) *notifications.Service {
	catalog := &fakeCatalogRepo{
		companies: map[int64]*domain.Company{1: {ID: 1, ProprietorID: 50}},
		clients: map[int64]*domain.Client{
			7:  {ID: 7, Email: "client@example.com"},
			50: {ID: 50, Email: "owner@example.com", Role: domain.RoleProprietor},
		},
	}
	return notifications.NewService(repo, catalog, nopMailClient{}, nopLogger{})
}

func TestNotify_RequiresRecipient(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	_, err := svc.Notify(context.Background(), &models.NotifyRequest{
		Message: "сообщение без адресата",
	})
	assert.ErrorIs(t, err, notifications.ErrInvalidRecipient)
}

func TestNotify_RequiresMessage(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	_, err := svc.Notify(context.Background(), &models.NotifyRequest{
		ClientID: ptr.Ptr(int64(7)),
	})
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)
}

func TestNotify_PersistsNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	resp, err := svc.Notify(context.Background(), &models.NotifyRequest{
		ClientID: ptr.Ptr(int64(7)),
		Message:  "ваша запись подтверждена",
		Type:     "info",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "info", resp.Type)
	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].HasRecipient())
}

func TestNotify_EmptyTypeDefaultsToInfo(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	resp, err := svc.Notify(context.Background(), &models.NotifyRequest{
		ClientID: ptr.Ptr(int64(7)),
		Message:  "сообщение",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.NotificationInfo), resp.Type)
}

func TestNotify_RejectsUnknownType(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	_, err := svc.Notify(context.Background(), &models.NotifyRequest{
		ClientID: ptr.Ptr(int64(7)),
		Message:  "сообщение",
		Type:     "critical",
	})
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)
}

func TestNotifyReservationCreated_AddressesBothParties(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	err := svc.NotifyReservationCreated(context.Background(), &domain.Reservation{
		ID:          1,
		CompanyID:   1,
		ClientID:    7,
		ServiceName: "Haircut",
		Date:        time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	require.NotNil(t, n.ClientID)
	require.NotNil(t, n.ProprietorID)
	assert.Equal(t, int64(7), *n.ClientID)
	assert.Equal(t, int64(50), *n.ProprietorID, "proprietor is resolved from the company")
	assert.Equal(t, domain.NotificationInfo, n.Type)
}

func TestNotifyReminder_AddressesClientOnly(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	err := svc.NotifyReminder(context.Background(), &domain.Reservation{
		ID:          1,
		CompanyID:   1,
		ClientID:    7,
		ServiceName: "Haircut",
		Date:        time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.NotNil(t, repo.created[0].ClientID)
	assert.Nil(t, repo.created[0].ProprietorID)
}

func TestGetNotifications_PerRecipient(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	_, err := svc.Notify(context.Background(), &models.NotifyRequest{
		ClientID: ptr.Ptr(int64(7)),
		Message:  "для клиента",
	})
	require.NoError(t, err)
	_, err = svc.Notify(context.Background(), &models.NotifyRequest{
		ProprietorID: ptr.Ptr(int64(50)),
		Message:      "для владельца",
	})
	require.NoError(t, err)

	byClient, err := svc.GetClientNotifications(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, byClient.Notifications, 1)
	assert.Equal(t, "для клиента", byClient.Notifications[0].Message)

	byProprietor, err := svc.GetProprietorNotifications(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, byProprietor.Notifications, 1)
	assert.Equal(t, "для владельца", byProprietor.Notifications[0].Message)
}

func TestGetSettings_DefaultsWhenMissing(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	resp, err := svc.GetSettings(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, resp.Enabled)
	assert.Equal(t, string(domain.FrequencyDaily), resp.Frequency)
	assert.Equal(t, "09:00", resp.SendTime)
}

func TestUpdateSettings_ProprietorOnly(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID:    7, // клиент, не владелец
		CompanyID: 1,
		Enabled:   true,
		Frequency: "daily",
		SendTime:  "10:00",
	})
	assert.ErrorIs(t, err, notifications.ErrAccessDenied)
}

func TestUpdateSettings_ValidatesFrequencyAndTime(t *testing.T) {
	svc := newService(&fakeNotificationRepo{})

	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID:    50,
		CompanyID: 1,
		Frequency: "hourly",
		SendTime:  "10:00",
	})
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)

	_, err = svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID:    50,
		CompanyID: 1,
		Frequency: "daily",
		SendTime:  "25:99",
	})
	assert.ErrorIs(t, err, notifications.ErrInvalidInput)
}

func TestUpdateSettings_PersistsChanges(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := newService(repo)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		UserID:    50,
		CompanyID: 1,
		Enabled:   false,
		Frequency: "daily",
		SendTime:  "08:30",
	})
	require.NoError(t, err)

	assert.False(t, resp.Enabled)
	assert.Equal(t, "08:30", resp.SendTime)

	stored, err := svc.GetSettings(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
}
