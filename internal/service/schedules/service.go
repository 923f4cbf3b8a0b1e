package schedules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	scheduleRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/schedule"
	"github.com/agendahub/AGH-BookingService/internal/service/schedules/models"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// Service сервис для работы с рабочими окнами компаний
type Service struct {
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// CreateWindow создает рабочее окно компании или услуги
// Окна одной компании могут пересекаться - это штатная ситуация
// (например, общее окно 08:00-18:00 и окно услуги 10:00-14:00)
func (s *Service) CreateWindow(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("CreateWindow: creating window for company=%d, service=%v by user=%d",
		req.CompanyID, req.ServiceID, req.UserID)

	window, err := s.buildWindow(req)
	if err != nil {
		s.logger.Warn("CreateWindow: validation failed for company=%d: %v", req.CompanyID, err)
		return nil, err
	}

	// Компания должна существовать, а пользователь - быть её владельцем
	company, err := s.getCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("CreateWindow: user=%d is not the proprietor of company=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	// Окно услуги требует существующую услугу этой же компании
	if req.ServiceID != nil {
		service, err := s.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, companyRepo.ErrServiceNotFound) {
				s.logger.Warn("CreateWindow: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("CreateWindow: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: CreateWindow - failed to get service: %v", ErrInternal, err)
		}
		if service.CompanyID != req.CompanyID {
			s.logger.Warn("CreateWindow: service id=%d belongs to another company", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
	}

	created, err := s.scheduleRepo.Create(ctx, window)
	if err != nil {
		s.logger.Error("CreateWindow: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: CreateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateWindow: created window id=%d for company=%d", created.ID, created.CompanyID)
	return models.FromDomainWindow(created), nil
}

// ListWindows получает рабочие окна компании
// При заданном ServiceID возвращаются окна услуги вместе с общими окнами
func (s *Service) ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for company=%d, service=%v", req.CompanyID, req.ServiceID)

	if _, err := s.getCompany(ctx, req.CompanyID); err != nil {
		return nil, err
	}

	windows, err := s.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
		CompanyID:       req.CompanyID,
		ServiceID:       req.ServiceID,
		OnlyCompanyWide: req.OnlyCompanyWide,
	})
	if err != nil {
		s.logger.Error("ListWindows: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: fetched %d windows for company=%d", len(windows), req.CompanyID)
	return models.FromDomainWindowList(windows), nil
}

// DeleteWindow удаляет рабочее окно
// Доступно только владельцу компании окна
func (s *Service) DeleteWindow(ctx context.Context, req *models.DeleteWindowRequest) error {
	s.logger.Info("DeleteWindow: deleting window id=%d by user=%d", req.WindowID, req.UserID)

	window, err := s.scheduleRepo.GetByID(ctx, req.WindowID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("DeleteWindow: window id=%d not found", req.WindowID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", req.WindowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	company, err := s.getCompany(ctx, window.CompanyID)
	if err != nil {
		return err
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("DeleteWindow: user=%d is not the proprietor of company=%d", req.UserID, window.CompanyID)
		return ErrAccessDenied
	}

	if err := s.scheduleRepo.Delete(ctx, req.WindowID); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: repository error for window id=%d: %v", req.WindowID, err)
		return fmt.Errorf("%w: DeleteWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteWindow: deleted window id=%d", req.WindowID)
	return nil
}

// DeleteByCompany удаляет все окна компании (каскад при удалении компании)
func (s *Service) DeleteByCompany(ctx context.Context, companyID int64) error {
	s.logger.Info("DeleteByCompany: deleting windows of company=%d", companyID)

	if err := s.scheduleRepo.DeleteByCompany(ctx, companyID); err != nil {
		s.logger.Error("DeleteByCompany: repository error for company=%d: %v", companyID, err)
		return fmt.Errorf("%w: DeleteByCompany - repository error: %v", ErrInternal, err)
	}

	return nil
}

// FindOrphans находит окна, потерявшие компанию или услугу
// Используется админским обходом целостности; штатно пусто, так как
// удаление компании каскадно чистит её окна
func (s *Service) FindOrphans(ctx context.Context) (*models.OrphanResponse, error) {
	s.logger.Info("FindOrphans: scanning for orphaned windows")

	orphans, err := s.scheduleRepo.FindOrphans(ctx)
	if err != nil {
		s.logger.Error("FindOrphans: repository error: %v", err)
		return nil, fmt.Errorf("%w: FindOrphans - repository error: %v", ErrInternal, err)
	}

	if len(orphans) > 0 {
		s.logger.Warn("FindOrphans: found %d orphaned windows", len(orphans))
	}

	resp := &models.OrphanResponse{Windows: make([]models.WindowResponse, 0, len(orphans))}
	for _, orphan := range orphans {
		resp.Windows = append(resp.Windows, *models.FromDomainWindow(orphan))
	}

	return resp, nil
}

// Вспомогательные методы

// buildWindow валидирует запрос и собирает domain модель окна
func (s *Service) buildWindow(req *models.CreateWindowRequest) (*domain.ScheduleWindow, error) {
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyID must be positive", ErrInvalidInput)
	}

	if len(req.Weekdays) == 0 {
		return nil, fmt.Errorf("%w: weekdays are required", ErrInvalidInput)
	}

	weekdays, err := domain.ParseWeekdaySet(strings.Join(req.Weekdays, ","))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start := types.TimeString(req.StartTime)
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	end := types.TimeString(req.EndTime)
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// Начало строго раньше конца: пустые и вывернутые окна запрещены
	if !(domain.TimeRange{Start: start, End: end}).IsValid() {
		return nil, fmt.Errorf("%w: start %s is not before end %s", ErrInvalidTimeRange, start, end)
	}

	return &domain.ScheduleWindow{
		CompanyID: req.CompanyID,
		ServiceID: req.ServiceID,
		Weekdays:  weekdays,
		StartTime: start,
		EndTime:   end,
	}, nil
}

func (s *Service) getCompany(ctx context.Context, companyID int64) (*domain.Company, error) {
	company, err := s.catalogRepo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("schedules: company id=%d not found", companyID)
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("schedules: failed to get company id=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	return company, nil
}
