package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	notificationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/notification"
	"github.com/agendahub/AGH-BookingService/internal/service/notifications/models"
	"github.com/agendahub/AGH-BookingService/pkg/ptr"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// Таймаут на доставку одного письма через почтовый шлюз
const mailSendTimeout = 10 * time.Second

// Значения настроек напоминаний при отсутствии записи компании
const (
	defaultSettingsEnabled  = true
	defaultSettingsSendTime = types.TimeString("09:00")
)

// Service диспетчер уведомлений
// Запись уведомления в БД синхронна, доставка письма уходит в фон:
// почтовый шлюз не должен тормозить создание бронирования
type Service struct {
	notificationRepo NotificationRepository
	catalogRepo      CatalogRepository
	mailClient       MailClient
	logger           Logger
}

// NewService создает новый экземпляр диспетчера уведомлений
func NewService(
	notificationRepo NotificationRepository,
	catalogRepo CatalogRepository,
	mailClient MailClient,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		catalogRepo:      catalogRepo,
		mailClient:       mailClient,
		logger:           logger,
	}
}

// Notify создает уведомление и отправляет письма получателям
// Хотя бы один получатель обязателен - без него ErrInvalidRecipient
func (s *Service) Notify(ctx context.Context, req *models.NotifyRequest) (*models.NotificationResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	notificationType, err := toDomainType(req.Type)
	if err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		ClientID:      req.ClientID,
		ProprietorID:  req.ProprietorID,
		Message:       req.Message,
		Type:          notificationType,
		ReservationID: req.ReservationID,
	}

	if !notification.HasRecipient() {
		s.logger.Warn("Notify: rejected notification without recipient")
		return nil, ErrInvalidRecipient
	}

	created, err := s.notificationRepo.Create(ctx, notification)
	if err != nil {
		s.logger.Error("Notify: failed to persist notification: %v", err)
		return nil, fmt.Errorf("%w: Notify - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Notify: notification id=%d created, type=%s", created.ID, created.Type)

	// Письма уходят в фоне; ошибка доставки логируется и не видна вызывающему
	s.dispatchMail(created)

	return models.FromDomainNotification(created), nil
}

// NotifyReservationCreated уведомляет клиента и владельца о новом бронировании
func (s *Service) NotifyReservationCreated(ctx context.Context, reservation *domain.Reservation) error {
	proprietorID, err := s.proprietorOf(ctx, reservation.CompanyID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Бронирование №%d: %s, %s %s",
		reservation.ID, reservation.ServiceName,
		reservation.Date.Format(domain.DateFormat), reservation.StartTime)

	_, err = s.Notify(ctx, &models.NotifyRequest{
		ClientID:      ptr.Ptr(reservation.ClientID),
		ProprietorID:  proprietorID,
		Message:       message,
		Type:          string(domain.NotificationInfo),
		ReservationID: ptr.Ptr(reservation.ID),
	})
	return err
}

// NotifyReservationCancelled уведомляет клиента и владельца об отмене
func (s *Service) NotifyReservationCancelled(ctx context.Context, reservation *domain.Reservation, reason string) error {
	proprietorID, err := s.proprietorOf(ctx, reservation.CompanyID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Бронирование №%d отменено: %s, %s %s",
		reservation.ID, reservation.ServiceName,
		reservation.Date.Format(domain.DateFormat), reservation.StartTime)
	if reason != "" {
		message += fmt.Sprintf(". Причина: %s", reason)
	}

	_, err = s.Notify(ctx, &models.NotifyRequest{
		ClientID:      ptr.Ptr(reservation.ClientID),
		ProprietorID:  proprietorID,
		Message:       message,
		Type:          string(domain.NotificationWarning),
		ReservationID: ptr.Ptr(reservation.ID),
	})
	return err
}

// NotifyReminder отправляет клиенту напоминание о предстоящем бронировании
func (s *Service) NotifyReminder(ctx context.Context, reservation *domain.Reservation) error {
	message := fmt.Sprintf("Напоминание: %s, %s %s",
		reservation.ServiceName,
		reservation.Date.Format(domain.DateFormat), reservation.StartTime)

	_, err := s.Notify(ctx, &models.NotifyRequest{
		ClientID:      ptr.Ptr(reservation.ClientID),
		Message:       message,
		Type:          string(domain.NotificationInfo),
		ReservationID: ptr.Ptr(reservation.ID),
	})
	return err
}

// GetClientNotifications получает уведомления клиента
func (s *Service) GetClientNotifications(ctx context.Context, clientID int64) (*models.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByClient(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientNotifications: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientNotifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// GetProprietorNotifications получает уведомления владельца компании
func (s *Service) GetProprietorNotifications(ctx context.Context, proprietorID int64) (*models.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.ListByProprietor(ctx, proprietorID)
	if err != nil {
		s.logger.Error("GetProprietorNotifications: repository error for proprietor=%d: %v", proprietorID, err)
		return nil, fmt.Errorf("%w: GetProprietorNotifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// GetSettings получает настройки напоминаний компании
// Без сохранённой записи действуют значения по умолчанию: ежедневные
// напоминания включены
func (s *Service) GetSettings(ctx context.Context, companyID int64) (*models.SettingsResponse, error) {
	settings, err := s.notificationRepo.GetSettings(ctx, companyID)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(defaultSettings(companyID)), nil
		}
		s.logger.Error("GetSettings: repository error for company=%d: %v", companyID, err)
		return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// UpdateSettings изменяет настройки напоминаний компании
// Доступно только владельцу компании
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for company=%d by user=%d", req.CompanyID, req.UserID)

	company, err := s.catalogRepo.GetCompany(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("UpdateSettings: failed to get company id=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - failed to get company: %v", ErrInternal, err)
	}
	if company.ProprietorID != req.UserID {
		s.logger.Warn("UpdateSettings: user=%d is not the proprietor of company=%d", req.UserID, req.CompanyID)
		return nil, ErrAccessDenied
	}

	frequency := domain.ReminderFrequency(req.Frequency)
	if frequency != domain.FrequencyDaily {
		return nil, fmt.Errorf("%w: unsupported frequency %q", ErrInvalidInput, req.Frequency)
	}

	sendTime := types.TimeString(req.SendTime)
	if err := sendTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid sendTime: %v", ErrInvalidInput, err)
	}

	updated, err := s.notificationRepo.UpsertSettings(ctx, &domain.NotificationSettings{
		CompanyID: req.CompanyID,
		Enabled:   req.Enabled,
		Frequency: frequency,
		SendTime:  sendTime,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: settings updated for company=%d, enabled=%t", req.CompanyID, updated.Enabled)
	return models.FromDomainSettings(updated), nil
}

// Вспомогательные методы

// dispatchMail отправляет письма получателям уведомления в фоне
// Контекст запроса не наследуется: завершение HTTP запроса не должно
// обрывать доставку
func (s *Service) dispatchMail(notification *domain.Notification) {
	subject := BuildSubject(notification.Type)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		if notification.ClientID != nil {
			s.sendTo(ctx, *notification.ClientID, subject, notification)
		}
		if notification.ProprietorID != nil && !sameRecipient(notification) {
			s.sendTo(ctx, *notification.ProprietorID, subject, notification)
		}
	}()
}

// sendTo доставляет письмо одному получателю
// Любая ошибка логируется и глотается: сбой почты не бизнес-ошибка
func (s *Service) sendTo(ctx context.Context, personID int64, subject string, notification *domain.Notification) {
	person, err := s.catalogRepo.GetClient(ctx, personID)
	if err != nil {
		s.logger.Error("sendTo: failed to resolve recipient id=%d for notification id=%d: %v",
			personID, notification.ID, err)
		return
	}

	if err := s.mailClient.Send(ctx, person.Email, subject, notification.Message); err != nil {
		s.logger.Error("sendTo: failed to send mail to %s for notification id=%d: %v",
			person.Email, notification.ID, err)
		return
	}

	s.logger.Info("sendTo: mail sent to recipient id=%d for notification id=%d", personID, notification.ID)
}

// proprietorOf возвращает ID владельца компании
func (s *Service) proprietorOf(ctx context.Context, companyID int64) (*int64, error) {
	company, err := s.catalogRepo.GetCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	return ptr.Ptr(company.ProprietorID), nil
}

func defaultSettings(companyID int64) *domain.NotificationSettings {
	return &domain.NotificationSettings{
		CompanyID: companyID,
		Enabled:   defaultSettingsEnabled,
		Frequency: domain.FrequencyDaily,
		SendTime:  defaultSettingsSendTime,
	}
}

func sameRecipient(n *domain.Notification) bool {
	return n.ClientID != nil && n.ProprietorID != nil && *n.ClientID == *n.ProprietorID
}

func toDomainType(raw string) (domain.NotificationType, error) {
	t := domain.NotificationType(raw)
	switch t {
	case domain.NotificationInfo, domain.NotificationWarning, domain.NotificationError:
		return t, nil
	case "":
		return domain.NotificationInfo, nil
	}
	return "", fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, raw)
}
