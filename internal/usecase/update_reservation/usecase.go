package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
	"github.com/agendahub/AGH-BookingService/pkg/txmanager"
)

// UseCase use case изменения бронирования
// Перенос на другой слот повторяет полную проверку доступности в той же
// сериализуемой транзакции, что и запись изменений.
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	windowFallback  bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	windowFallback bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		windowFallback:  windowFallback,
		logger:          logger,
	}
}

// Execute изменяет бронирование: слот, статус или заметки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	if req.Date != nil {
		if err := validateDate(*req.Date, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("UpdateReservation: date validation failed: %v", err)
			return nil, err
		}
	}

	var updated *domain.Reservation
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Получаем текущее состояние бронирования
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return fmt.Errorf("%w: id=%d", ErrReservationNotFound, req.ReservationID)
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		if current.ClientID != req.ClientID {
			return fmt.Errorf("%w: reservation id=%d belongs to another client",
				ErrAccessDenied, req.ReservationID)
		}

		if !current.CanBeUpdated() {
			return fmt.Errorf("%w: id=%d, status=%s",
				ErrReservationNotEditable, current.ID, current.Status)
		}

		// 3. Проверяем переход статуса по машине состояний
		if req.Status != nil {
			newStatus := domain.ReservationStatus(*req.Status)
			if !current.CanTransitionTo(newStatus) {
				return fmt.Errorf("%w: %s -> %s",
					ErrInvalidStatusTransition, current.Status, newStatus)
			}
			// Отмена через PATCH фиксирует момент отмены так же,
			// как и отдельная операция отмены
			if newStatus == domain.StatusCancelled && !current.IsCancelled() {
				cancelledAt := uc.timeProvider.Now()
				current.CancelledAt = &cancelledAt
			}
			current.Status = newStatus
		}

		origDate := current.Date
		origActive := current.IsActive()

		slotChanged := false
		if req.Date != nil && !sameDate(current.Date, *req.Date) {
			current.Date = *req.Date
			slotChanged = true
		}
		if req.StartTime != nil && *req.StartTime != current.StartTime {
			current.StartTime = *req.StartTime
			slotChanged = true
		}
		if req.Notes != nil {
			current.Notes = req.Notes
		}

		// 4. Новый слот проходит ту же проверку, что и при создании
		if slotChanged && current.IsActive() {
			selfCounted := origActive && sameDate(origDate, current.Date)
			if err := uc.checkSlot(txCtx, current, selfCounted); err != nil {
				return err
			}
		}

		if err := uc.reservationRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// Перечитываем, чтобы вернуть свежие updated_at
		updated, err = uc.reservationRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload reservation: %v", ErrInternal, err)
		}

		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, txmanager.ErrSerializationConflict) {
			uc.logger.Warn("UpdateReservation: serialization conflict for reservation id=%d: %v",
				req.ReservationID, txErr)
			return nil, fmt.Errorf("%w: commit conflict", ErrSlotNotAvailable)
		}
		return nil, txErr
	}

	uc.logger.Info("UpdateReservation: reservation id=%d updated, status=%s, slot=%s %s",
		updated.ID, updated.Status, updated.Date.Format(domain.DateFormat), updated.StartTime)

	return fromDomain(updated), nil
}

// checkSlot повторяет проверку доступности для нового слота бронирования
// selfCounted=true, когда счетчик на ту же дату уже включает само
// бронирование: перенос времени внутри дня не занимает лишнее место
func (uc *UseCase) checkSlot(ctx context.Context, r *domain.Reservation, selfCounted bool) error {
	weekday := r.Date.Weekday()

	windows, err := uc.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
		CompanyID: r.CompanyID,
		ServiceID: ptr.Ptr(r.ServiceID),
		Weekday:   &weekday,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to list service windows: %v", ErrInternal, err)
	}

	if len(windows) == 0 && uc.windowFallback {
		windows, err = uc.scheduleRepo.List(ctx, domain.ScheduleWindowsFilter{
			CompanyID:       r.CompanyID,
			OnlyCompanyWide: true,
			Weekday:         &weekday,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list company windows: %v", ErrInternal, err)
		}
	}

	if !timeInsideAnyWindow(r.StartTime, windows) {
		return fmt.Errorf("%w: %s %s", ErrOutsideWorkingHours,
			r.Date.Format(domain.DateFormat), r.StartTime)
	}

	service, err := uc.catalogRepo.GetService(ctx, r.ServiceID)
	if err != nil {
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	count, err := uc.reservationRepo.CountForServiceAndDate(ctx, r.ServiceID, r.Date)
	if err != nil {
		return fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}
	if selfCounted {
		count--
	}

	if count >= service.CapacityLimit {
		return fmt.Errorf("%w: service id=%d at capacity on %s (%d/%d)",
			ErrSlotNotAvailable, r.ServiceID,
			r.Date.Format(domain.DateFormat), count, service.CapacityLimit)
	}

	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
