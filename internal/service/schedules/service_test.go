package schedules_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	scheduleRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/schedule"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	nextID  int64
	windows map[int64]*domain.ScheduleWindow
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{windows: make(map[int64]*domain.ScheduleWindow)}
}

func (f *fakeScheduleRepo) Create(_ context.Context, w *domain.ScheduleWindow) (*domain.ScheduleWindow, error) {
	f.nextID++
	w.ID = f.nextID
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	f.windows[w.ID] = w
	return w, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ScheduleWindow, error) {
	if w, ok := f.windows[id]; ok {
		return w, nil
	}
	return nil, scheduleRepo.ErrWindowNotFound
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
		result = append(result, w)
	}
	return result, nil
}

func (f *fakeScheduleRepo) FindOrphans(context.Context) ([]*domain.ScheduleWindow, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.windows[id]; !ok {
		return scheduleRepo.ErrWindowNotFound
	}
	delete(f.windows, id)
	return nil
}

func (f *fakeScheduleRepo) DeleteByCompany(_ context.Context, companyID int64) error {
	for id, w := range f.windows {
		if w.CompanyID == companyID {
			delete(f.windows, id)
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	companies map[int64]*domain.Company
	services  map[int64]*domain.Service
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

func newService(repo *fakeScheduleRepo) *schedules.Service {
	catalog := &fakeCatalogRepo{
		companies: map[int64]*domain.Company{1: {ID: 1, ProprietorID: 50}},
		services: map[int64]*domain.Service{
			10: {ID: 10, CompanyID: 1},
			20: {ID: 20, CompanyID: 2},
		},
	}
	return schedules.NewService(repo, catalog, nopLogger{})
}

func validCreateRequest() *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		UserID:    50,
		CompanyID: 1,
		Weekdays:  []string{"mon", "wed", "fri"},
		StartTime: "09:00",
		EndTime:   "18:00",
	}
}

func TestCreateWindow(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)

	resp, err := svc.CreateWindow(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, []string{"mon", "wed", "fri"}, resp.Weekdays)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Nil(t, resp.ServiceID, "window without serviceId is company-wide")
}

func TestCreateWindow_InvalidTimeRange(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	req := validCreateRequest()
	req.StartTime = "18:00"
	req.EndTime = "09:00"
	_, err := svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrInvalidTimeRange)

	// Пустое окно также запрещено
	req = validCreateRequest()
	req.StartTime = "09:00"
	req.EndTime = "09:00"
	_, err = svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrInvalidTimeRange)
}

func TestCreateWindow_InvalidWeekdays(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	req := validCreateRequest()
	req.Weekdays = []string{"monday"}
	_, err := svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrInvalidInput)

	req = validCreateRequest()
	req.Weekdays = nil
	_, err = svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrInvalidInput)
}

func TestCreateWindow_ProprietorOnly(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	req := validCreateRequest()
	req.UserID = 7
	_, err := svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrAccessDenied)
}

func TestCreateWindow_ServiceMustBelongToCompany(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	// Услуга 20 принадлежит другой компании
	req := validCreateRequest()
	req.ServiceID = ptr.Ptr(int64(20))
	_, err := svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrServiceNotFound)

	req = validCreateRequest()
	req.ServiceID = ptr.Ptr(int64(99))
	_, err = svc.CreateWindow(context.Background(), req)
	assert.ErrorIs(t, err, schedules.ErrServiceNotFound)
}

func TestDeleteWindow(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newService(repo)

	created, err := svc.CreateWindow(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Не владелец не может удалить окно
	err = svc.DeleteWindow(context.Background(), &models.DeleteWindowRequest{UserID: 7, WindowID: created.ID})
	assert.ErrorIs(t, err, schedules.ErrAccessDenied)

	err = svc.DeleteWindow(context.Background(), &models.DeleteWindowRequest{UserID: 50, WindowID: created.ID})
	require.NoError(t, err)

	err = svc.DeleteWindow(context.Background(), &models.DeleteWindowRequest{UserID: 50, WindowID: created.ID})
	assert.ErrorIs(t, err, schedules.ErrWindowNotFound)
}

func TestListWindows_UnknownCompany(t *testing.T) {
	svc := newService(newFakeScheduleRepo())

	_, err := svc.ListWindows(context.Background(), &models.ListWindowsRequest{CompanyID: 99})
	assert.ErrorIs(t, err, schedules.ErrCompanyNotFound)
}
