package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
	"github.com/agendahub/AGH-BookingService/pkg/txmanager"
)

// UseCase use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: между check и commit никто не может занять последнее место.
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	windowFallback  bool
	defaultStatus   domain.ReservationStatus
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	windowFallback bool,
	defaultStatus domain.ReservationStatus,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		windowFallback:  windowFallback,
		defaultStatus:   defaultStatus,
		logger:          logger,
	}
}

// Execute создает бронирование с повторной проверкой доступности внутри транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	status, err := resolveStatus(req.Status, uc.defaultStatus)
	if err != nil {
		uc.logger.Warn("CreateReservation: status validation failed: %v", err)
		return nil, err
	}

	// 2. Разрешаем участников бронирования
	if _, err := uc.catalogRepo.GetCompany(ctx, req.CompanyID); err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrCompanyNotFound, req.CompanyID)
		}
		uc.logger.Error("CreateReservation: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}

	if _, err := uc.catalogRepo.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, companyRepo.ErrClientNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrClientNotFound, req.ClientID)
		}
		uc.logger.Error("CreateReservation: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.CompanyID != req.CompanyID {
		uc.logger.Warn("CreateReservation: service id=%d does not belong to company id=%d",
			req.ServiceID, req.CompanyID)
		return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, req.ServiceID)
	}

	// 3. Проверка и вставка в одной сериализуемой транзакции
	var created *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		windows, err := uc.windowsForSlot(txCtx, req, service)
		if err != nil {
			return err
		}

		if !timeInsideAnyWindow(req.StartTime, windows) {
			return fmt.Errorf("%w: %s %s", ErrOutsideWorkingHours,
				req.Date.Format(domain.DateFormat), req.StartTime)
		}

		// Счетчик берет FOR UPDATE на активные строки слота
		count, err := uc.reservationRepo.CountForServiceAndDate(txCtx, req.ServiceID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
		}

		if count >= service.CapacityLimit {
			return fmt.Errorf("%w: service id=%d at capacity on %s (%d/%d)",
				ErrSlotNotAvailable, req.ServiceID,
				req.Date.Format(domain.DateFormat), count, service.CapacityLimit)
		}

		created, err = uc.reservationRepo.Create(txCtx, &domain.Reservation{
			CompanyID:    req.CompanyID,
			ClientID:     req.ClientID,
			ServiceID:    req.ServiceID,
			Date:         req.Date,
			StartTime:    req.StartTime,
			Status:       status,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			Notes:        req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		// Исчерпанные попытки разрешить конфликт коммита трактуем как занятый слот
		if errors.Is(txErr, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("CreateReservation: serialization conflict for service id=%d on %s: %v",
				req.ServiceID, req.Date.Format(domain.DateFormat), txErr)
			return nil, fmt.Errorf("%w: commit conflict", ErrSlotNotAvailable)
		}
		return nil, txErr
	}

	uc.logger.Info("CreateReservation: reservation id=%d created for client id=%d, service id=%d on %s %s",
		created.ID, created.ClientID, created.ServiceID,
		created.Date.Format(domain.DateFormat), created.StartTime)

	// 4. Уведомление после коммита: его ошибка не откатывает бронирование
	if err := uc.notifier.NotifyReservationCreated(ctx, created); err != nil {
		uc.logger.Error("CreateReservation: failed to notify about reservation id=%d: %v",
			created.ID, err)
	}

	return fromDomain(created), nil
}

// windowsForSlot возвращает окна, действующие для услуги в день недели даты
// Политика повторяет check_availability: окна услуги, затем общие окна компании
func (uc *UseCase) windowsForSlot(ctx context.Context, req *Request, service *domain.Service) ([]*domain.ScheduleWindow, error) {
	weekday := req.Date.Weekday()

	serviceWindows, err := uc.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
		CompanyID: req.CompanyID,
		ServiceID: ptr.Ptr(service.ID),
		Weekday:   &weekday,
	})
	if err != nil {
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
		return nil, fmt.Errorf("%w: failed to list company windows: %v", ErrInternal, err)
	}

	return companyWindows, nil
}
