package process_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/domain"
	notificationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/notification"
)

// UseCase use case рассылки напоминаний о предстоящих бронированиях
// Прогон идемпотентен: бронирование захватывается через условное
// обновление reminder_sent_at, поэтому повторный прогон (или параллельный
// инстанс сервиса) не отправит второе напоминание.
type UseCase struct {
	reservationRepo ReservationRepository
	settingsRepo    SettingsRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	leadHours       int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// leadHours определяет окно: напоминания уходят по бронированиям с датой
// в пределах leadHours от момента прогона
func NewUseCase(
	reservationRepo ReservationRepository,
	settingsRepo SettingsRepository,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	leadHours int,
	logger Logger,
) *UseCase {
	if leadHours <= 0 {
		leadHours = domain.DefaultReminderLeadHours
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		settingsRepo:    settingsRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		leadHours:       leadHours,
		logger:          logger,
	}
}

// Execute выполняет один прогон напоминаний
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = uc.timeProvider.Now()
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := now.Add(time.Duration(uc.leadHours) * time.Hour)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	resp := &Response{WindowFrom: from, WindowTo: to}

	// 1. Захватываем бронирования в одной транзакции
	// FOR UPDATE в ListDueReminders сериализует конкурирующие прогоны
	var claimed []*domain.Reservation
	txErr := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		due, err := uc.reservationRepo.ListDueReminders(txCtx, from, to)
		if err != nil {
			return fmt.Errorf("%w: failed to list due reminders: %v", ErrInternal, err)
		}

		enabledByCompany := make(map[int64]bool)
		for _, reservation := range due {
			// Компания могла отключить рассылку: такие бронирования не
			// захватываются и не получают напоминаний
			if !uc.remindersEnabled(txCtx, enabledByCompany, reservation.CompanyID) {
				resp.Muted++
				continue
			}

			ok, err := uc.reservationRepo.MarkReminderSent(txCtx, reservation.ID, now)
			if err != nil {
				return fmt.Errorf("%w: failed to mark reminder sent for id=%d: %v",
					ErrInternal, reservation.ID, err)
			}
			if !ok {
				resp.Skipped++
				continue
			}
			claimed = append(claimed, reservation)
		}

		return nil
	})
	if txErr != nil {
		uc.logger.Error("ProcessReminders: sweep transaction failed: %v", txErr)
		return nil, txErr
	}

	resp.Claimed = len(claimed)

	// 2. Отправляем уведомления после коммита
	// Ошибка доставки не откатывает захват: лучше потерять одно письмо,
	// чем заспамить клиента повторами
	for _, reservation := range claimed {
		if err := uc.notifier.NotifyReminder(ctx, reservation); err != nil {
			resp.Failed++
			uc.logger.Error("ProcessReminders: failed to notify for reservation id=%d: %v",
				reservation.ID, err)
		}
	}

	uc.logger.Info("ProcessReminders: window %s..%s, claimed=%d, skipped=%d, muted=%d, failed=%d",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		resp.Claimed, resp.Skipped, resp.Muted, resp.Failed)

	return resp, nil
}

// remindersEnabled проверяет флаг рассылки компании, кэшируя ответ на время
// прогона. Отсутствие записи означает настройки по умолчанию - рассылка
// включена; ошибка чтения настроек не останавливает прогон
func (uc *UseCase) remindersEnabled(ctx context.Context, cache map[int64]bool, companyID int64) bool {
	if enabled, ok := cache[companyID]; ok {
		return enabled
	}

	enabled := true
	settings, err := uc.settingsRepo.GetSettings(ctx, companyID)
	switch {
	case err == nil:
		enabled = settings.Enabled
	case errors.Is(err, notificationRepo.ErrSettingsNotFound):
	default:
		uc.logger.Warn("ProcessReminders: failed to load settings for company=%d, assuming enabled: %v",
			companyID, err)
	}

	cache[companyID] = enabled
	return enabled
}
