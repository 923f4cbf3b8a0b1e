package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/agendahub/AGH-BookingService/internal/usecase/process_reminders"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

// ReminderRunner интерфейс прогона напоминаний
type ReminderRunner interface {
	Execute(ctx context.Context, req *process_reminders.Request) (*process_reminders.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает прогон напоминаний раз в сутки в заданное время
// Работает как singleton периодическая задача: пока идет один прогон,
// следующий не стартует
type Scheduler struct {
	runner   ReminderRunner
	sendTime types.TimeString
	logger   Logger

	mu      sync.Mutex
	running bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New создает планировщик прогонов напоминаний
func New(runner ReminderRunner, sendTime types.TimeString, logger Logger) *Scheduler {
	return &Scheduler{
		runner:   runner,
		sendTime: sendTime,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает цикл планировщика в отдельной горутине
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop останавливает планировщик и дожидается завершения цикла
// Уже начатый прогон не прерывается
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)

	for {
		next := s.nextFireTime(time.Now())
		s.logger.Info("Scheduler: next reminder sweep at %s", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.stopCh:
			timer.Stop()
			s.logger.Info("Scheduler: stopped")
			return
		case <-timer.C:
			s.runSweep()
		}
	}
}

// runSweep выполняет один прогон, пропуская запуск при незавершённом предыдущем
func (s *Scheduler) runSweep() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Scheduler: previous sweep still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	resp, err := s.runner.Execute(context.Background(), &process_reminders.Request{})
	if err != nil {
		s.logger.Error("Scheduler: reminder sweep failed: %v", err)
		return
	}

	s.logger.Info("Scheduler: reminder sweep finished, claimed=%d, skipped=%d, muted=%d, failed=%d",
		resp.Claimed, resp.Skipped, resp.Muted, resp.Failed)
}

// nextFireTime вычисляет ближайший момент запуска после now
// Время суток берется из настроек; если оно сегодня уже прошло,
// запуск переносится на завтра
func (s *Scheduler) nextFireTime(now time.Time) time.Time {
	hour, minute := 9, 0
	if total, err := s.sendTime.Minutes(); err == nil {
		hour, minute = total/60, total%60
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
