package service

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"
	"alarmclock/internal/domain/timer"
	"alarmclock/internal/observability/metrics"
	appErrors "alarmclock/internal/pkg/errors"
	"alarmclock/internal/pkg/logger"
	"alarmclock/internal/pkg/observable"
	"context"
	"time"
)

type preciseAlarmService struct {
	timer   timer.Service
	precise *kindScheduler[entity.PreciseAlarm]
	log     logger.Logger
}

// NewPreciseAlarmService creates a new instance of PreciseAlarmService implementation.
func NewPreciseAlarmService(timerSvc timer.Service, alarmRepo repository.AlarmRepository, log logger.Logger) PreciseAlarmService {
	log = log.With("precise")
	return &preciseAlarmService{
		timer: timerSvc,
		log:   log,
		precise: &kindScheduler[entity.PreciseAlarm]{
			kind:  constant.KindPrecise,
			repo:  alarmRepo,
			state: observable.New(entity.PreciseAlarm{}),
			log:   log,
			now:   time.Now,
			arm: func(a entity.PreciseAlarm) error {
				return timerSvc.SetExact(timer.ModeWakeup, a.TriggerAtMillis, constant.PreciseAlarmCode)
			},
			cancel:     func() error { return timerSvc.Cancel(constant.PreciseAlarmCode) },
			toRecord:   entity.PreciseAlarm.ToRecord,
			fromRecord: entity.PreciseAlarmFromRecord,
		},
	}
}

func (s *preciseAlarmService) GetPreciseAlarmState() observable.ReadOnly[entity.PreciseAlarm] {
	return s.precise.state
}

func (s *preciseAlarmService) CanScheduleExactAlarms() bool {
	return s.timer.CanScheduleExact()
}

func (s *preciseAlarmService) SchedulePreciseAlarm(ctx context.Context, alarm entity.PreciseAlarm) error {
	if !s.timer.CanScheduleExact() {
		metrics.IncSchedule(constant.KindPrecise.String(), metrics.ResultDenied)
		s.log.Warn("Precise alarm requested without the exact alarm capability")
		return appErrors.ErrPermissionDenied
	}
	return s.precise.schedule(ctx, alarm)
}

func (s *preciseAlarmService) ClearPreciseAlarm(ctx context.Context) error {
	return s.precise.clear(ctx)
}

// RescheduleOnRestart runs after a boot or process start. Without the exact
// capability a persisted alarm cannot be re-armed, so it is purged like a stale one.
func (s *preciseAlarmService) RescheduleOnRestart(ctx context.Context) error {
	if !s.timer.CanScheduleExact() {
		s.log.Warn("Exact alarm capability revoked, clearing any persisted precise alarm")
		return s.precise.clear(ctx)
	}
	return s.precise.reschedule(ctx)
}

func (s *preciseAlarmService) ConsumeFiredPreciseAlarm(ctx context.Context, firedAtMillis int64) (bool, error) {
	return s.precise.consume(ctx, firedAtMillis)
}
