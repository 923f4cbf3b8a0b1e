package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendahub/AGH-BookingService/internal/usecase/process_reminders"
	"github.com/agendahub/AGH-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopRunner struct{}

func (nopRunner) Execute(context.Context, *process_reminders.Request) (*process_reminders.Response, error) {
	return &process_reminders.Response{}, nil
}

func TestNextFireTime(t *testing.T) {
	s := New(nopRunner{}, types.TimeString("09:00"), nopLogger{})

	// До времени отправки - запуск сегодня
	now := time.Date(2026, time.August, 29, 7, 30, 0, 0, time.UTC)
	next := s.nextFireTime(now)
	assert.Equal(t, time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC), next)

	// После времени отправки - запуск завтра
	now = time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	next = s.nextFireTime(now)
	assert.Equal(t, time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC), next)

	// Ровно в момент отправки - уже на завтра
	now = time.Date(2026, time.August, 29, 9, 0, 0, 0, time.UTC)
	next = s.nextFireTime(now)
	assert.Equal(t, time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC), next)
}

func TestNextFireTime_InvalidSendTimeFallsBack(t *testing.T) {
	s := New(nopRunner{}, types.TimeString("bogus"), nopLogger{})

	now := time.Date(2026, time.August, 29, 7, 0, 0, 0, time.UTC)
	next := s.nextFireTime(now)
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, 0, next.Minute())
}

type blockingRunner struct {
	started  chan struct{}
	release  chan struct{}
	executed int32
}

func (r *blockingRunner) Execute(context.Context, *process_reminders.Request) (*process_reminders.Response, error) {
	atomic.AddInt32(&r.executed, 1)
	close(r.started)
	<-r.release
	return &process_reminders.Response{}, nil
}

func TestRunSweep_SkipsWhileRunning(t *testing.T) {
	runner := &blockingRunner{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(runner, types.TimeString("09:00"), nopLogger{})

	go s.runSweep()
	<-runner.started

	// Пока первый прогон не завершился, повторный запуск пропускается
	s.runSweep()
	assert.Equal(t, int32(1), atomic.LoadInt32(&runner.executed))

	close(runner.release)
}

func TestStartStop(t *testing.T) {
	s := New(nopRunner{}, types.TimeString("09:00"), nopLogger{})
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop in time")
	}
}
