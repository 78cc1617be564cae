package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ActivationUseCase переводит наступившие бронирования в active
type ActivationUseCase interface {
	Execute(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler фоновые задачи сервиса
type Scheduler struct {
	s      gocron.Scheduler
	logger Logger
}

// New создает планировщик и регистрирует задачу активации с периодом period
// Задача не запускается параллельно сама с собой
func New(activation ActivationUseCase, period time.Duration, timeout time.Duration, logger Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: create: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if _, err := activation.Execute(ctx); err != nil {
				logger.Error("Scheduler: activation sweep failed: %v", err)
			}
		}),
		gocron.WithName("activate-bookings"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("scheduler: register activation job: %w", err)
	}

	return &Scheduler{s: s, logger: logger}, nil
}

// Start запускает задачи
func (s *Scheduler) Start() {
	s.s.Start()
	s.logger.Info("Scheduler started")
}

// Stop останавливает планировщик и ждет завершения текущих задач
func (s *Scheduler) Stop() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("scheduler: shutdown: %w", err)
	}
	s.logger.Info("Scheduler stopped")
	return nil
}
