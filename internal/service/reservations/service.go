package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	"github.com/agendahub/AGH-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и владельцу компании
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// GetClientReservations получает историю бронирований клиента
// Опционально фильтрует по статусу. Клиент видит только свою историю
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", req.ClientID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientReservations: user=%d requested history of client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.ListByClient(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: fetched %d reservations for client=%d", len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetCompanyReservations получает бронирования компании с гибкой фильтрацией
// Поддерживает фильтры по услуге, клиенту, периоду и статусу
// Доступно только владельцу компании
func (s *Service) GetCompanyReservations(ctx context.Context, req *models.GetCompanyReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCompanyReservations: fetching reservations for company=%d, user=%d", req.CompanyID, req.UserID)

	if err := s.checkProprietorAccess(ctx, req.CompanyID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyReservations: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListByCompany(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyReservations: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCompanyReservations: fetched %d reservations for company=%d", len(reservations), req.CompanyID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Операция идемпотентна: повторная отмена уже отменённого бронирования
// завершается успешно, не меняя причину и время первой отмены
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, req.UserID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", req.UserID, reservationID)
		return err
	}

	if reservation.IsCancelled() {
		s.logger.Info("Cancel: reservation id=%d already cancelled, no-op", reservationID)
		return nil
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			// Гонка с параллельной отменой - считаем успехом
			s.logger.Info("Cancel: reservation id=%d cancelled concurrently", reservationID)
			return nil
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Уведомление об отмене: ошибка не отменяет саму отмену
	if err := s.notifier.NotifyReservationCancelled(ctx, reservation, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: failed to notify about cancellation of reservation id=%d: %v", reservationID, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// DeleteByClient удаляет все бронирования клиента (каскад при удалении клиента)
func (s *Service) DeleteByClient(ctx context.Context, clientID int64) error {
	s.logger.Info("DeleteByClient: deleting reservations of client=%d", clientID)

	if err := s.reservationRepo.DeleteByClient(ctx, clientID); err != nil {
		s.logger.Error("DeleteByClient: repository error for client=%d: %v", clientID, err)
		return fmt.Errorf("%w: DeleteByClient - repository error: %v", ErrInternal, err)
	}

	return nil
}

// DeleteByCompany удаляет все бронирования компании (каскад при удалении компании)
func (s *Service) DeleteByCompany(ctx context.Context, companyID int64) error {
	s.logger.Info("DeleteByCompany: deleting reservations of company=%d", companyID)

	if err := s.reservationRepo.DeleteByCompany(ctx, companyID); err != nil {
		s.logger.Error("DeleteByCompany: repository error for company=%d: %v", companyID, err)
		return fmt.Errorf("%w: DeleteByCompany - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у владельца бронирования и у владельца компании
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.ClientID == userID {
		return nil
	}

	if err := s.checkProprietorAccess(ctx, reservation.CompanyID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkProprietorAccess проверяет, что пользователь является владельцем компании
func (s *Service) checkProprietorAccess(ctx context.Context, companyID int64, userID int64) error {
	company, err := s.catalogRepo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			s.logger.Warn("checkProprietorAccess: company id=%d not found", companyID)
			return ErrCompanyNotFound
		}
		s.logger.Error("checkProprietorAccess: failed to get company id=%d: %v", companyID, err)
		return fmt.Errorf("%w: checkProprietorAccess - failed to get company: %v", ErrInternal, err)
	}

	if company.ProprietorID != userID {
		s.logger.Warn("checkProprietorAccess: user=%d is not the proprietor of company=%d", userID, companyID)
		return ErrAccessDenied
	}

	return nil
}
