package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
)

// UseCase use case проверки доступности слота
// Чисто читающая операция: ничего не резервирует. Создание бронирования
// повторяет эту проверку внутри сериализуемой транзакции (см. create_reservation).
type UseCase struct {
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	windowFallback  bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// windowFallback управляет политикой: использовать ли общие окна компании,
// когда у услуги нет собственных
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	windowFallback bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		windowFallback:  windowFallback,
		logger:          logger,
	}
}

// Execute классифицирует слот (company, service, date, time)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 1. Разрешаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service id=%d not found", req.ServiceID)
			return &Response{Status: domain.SlotUnknownService}, nil
		}
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.CompanyID != req.CompanyID {
		uc.logger.Warn("CheckAvailability: service id=%d does not belong to company id=%d",
			req.ServiceID, req.CompanyID)
		return &Response{Status: domain.SlotUnknownService}, nil
	}

	// 2. Ищем рабочие окна на день недели
	windows, err := uc.windowsForSlot(ctx, req, service)
	if err != nil {
		return nil, err
	}

	// 3. Время должно попадать хотя бы в одно окно
	if !timeInsideAnyWindow(req.StartTime, windows) {
		uc.logger.Info("CheckAvailability: slot %s %s outside working hours for service id=%d",
			req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceID)
		return &Response{
			Status:        domain.SlotOutsideWorkingHours,
			CapacityLimit: service.CapacityLimit,
		}, nil
	}

	// 4. Проверяем вместимость
	count, err := uc.reservationRepo.CountForServiceAndDate(ctx, req.ServiceID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}

	if count >= service.CapacityLimit {
		uc.logger.Info("CheckAvailability: service id=%d at capacity on %s (%d/%d)",
			req.ServiceID, req.Date.Format(domain.DateFormat), count, service.CapacityLimit)
		return &Response{
			Status:        domain.SlotAtCapacity,
			CapacityLimit: service.CapacityLimit,
			ActiveCount:   count,
		}, nil
	}

	return &Response{
		Status:        domain.SlotAvailable,
		CapacityLimit: service.CapacityLimit,
		ActiveCount:   count,
	}, nil
}

// windowsForSlot возвращает окна, действующие для услуги в день недели даты
// Сначала ищутся окна самой услуги; если их нет и политика fallback включена,
// используются общие окна компании (service_id IS NULL)
func (uc *UseCase) windowsForSlot(ctx context.Context, req *Request, service *domain.Service) ([]*domain.ScheduleWindow, error) {
	weekday := req.Date.Weekday()

	serviceWindows, err := uc.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
		CompanyID: req.CompanyID,
		ServiceID: ptr.Ptr(service.ID),
		Weekday:   &weekday,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list service windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list service windows: %v", ErrInternal, err)
	}

	if len(serviceWindows) > 0 || !uc.windowFallback {
		return serviceWindows, nil
	}

	companyWindows, err := uc.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
		CompanyID:       req.CompanyID,
		OnlyCompanyWide: true,
		Weekday:         &weekday,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list company windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list company windows: %v", ErrInternal, err)
	}

	return companyWindows, nil
}
