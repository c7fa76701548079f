package expire_pending

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-CarwashBooking/internal/domain"
	"github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
)

const (
	// ExpiredReason причина, записываемая в историю при автоматической отмене
	ExpiredReason = "expired"

	defaultBatchSize = 100
	runTimeout       = 5 * time.Minute
)

// Job отменяет бронирования, которые так и не подтвердили до даты визита
type Job struct {
	finder    BookingFinder
	updater   StatusUpdater
	graceDays int
	batchSize uint64
	now       func() time.Time
	logger    Logger
}

// NewJob создает задачу; graceDays - сколько дней после даты визита бронирование может оставаться в Pending
func NewJob(finder BookingFinder, updater StatusUpdater, graceDays int, logger Logger) *Job {
	return &Job{
		finder:    finder,
		updater:   updater,
		graceDays: graceDays,
		batchSize: defaultBatchSize,
		now:       time.Now,
		logger:    logger,
	}
}

// Run обрабатывает одну пачку просроченных бронирований и возвращает количество отменённых
func (j *Job) Run(ctx context.Context) (int, error) {
	now := j.now()
	before := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -j.graceDays)

	ids, err := j.finder.GetStalePending(ctx, before, j.batchSize)
	if err != nil {
		j.logger.Error("ExpirePending: failed to find stale bookings: %v", err)
		return 0, fmt.Errorf("expire_pending: find stale bookings: %w", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	expired := 0
	for _, id := range ids {
		_, err := j.updater.Execute(ctx, &update_status.Request{
			AppointmentID: id,
			NewStatus:     string(domain.StatusCancelled),
			Reason:        ExpiredReason,
			ChangedBy:     domain.ChangedBySystem,
		})
		if err != nil {
			// бронирование могли подтвердить или отменить между выборкой и обновлением
			if errors.Is(err, update_status.ErrInvalidTransition) || errors.Is(err, update_status.ErrConcurrentUpdate) {
				j.logger.Warn("ExpirePending: booking %s skipped: %v", id, err)
				continue
			}
			j.logger.Error("ExpirePending: failed to cancel booking %s: %v", id, err)
			continue
		}
		expired++
	}

	j.logger.Info("ExpirePending: cancelled %d of %d stale bookings scheduled before %s", expired, len(ids), before.Format(domain.DateFormat))
	return expired, nil
}

// Scheduler запускает Job по cron-расписанию
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler регистрирует задачу в cron. spec поддерживает дескрипторы вида "@every 1h".
func NewScheduler(spec string, job *Job, logger Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := job.Run(ctx); err != nil {
			logger.Error("ExpirePending: run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("expire_pending: invalid schedule %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("ExpirePending: scheduler started")
}

// Stop останавливает планировщик и ждёт завершения текущего запуска
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("ExpirePending: scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("ExpirePending: scheduler stop timed out")
	}
}
