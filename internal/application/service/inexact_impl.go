package service

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"
	"alarmclock/internal/domain/timer"
	"alarmclock/internal/pkg/logger"
	"alarmclock/internal/pkg/observable"
	"context"
	"errors"
	"time"
)

type inexactAlarmService struct {
	inexact   *kindScheduler[entity.InexactAlarm]
	window    *kindScheduler[entity.WindowAlarm]
	repeating *kindScheduler[entity.RepeatingAlarm]
	log       logger.Logger
}

// NewInexactAlarmService creates a new instance of InexactAlarmService implementation.
func NewInexactAlarmService(timerSvc timer.Service, alarmRepo repository.AlarmRepository, log logger.Logger) InexactAlarmService {
	log = log.With("inexact")
	return &inexactAlarmService{
		log: log,
		inexact: &kindScheduler[entity.InexactAlarm]{
			kind:  constant.KindInexact,
			repo:  alarmRepo,
			state: observable.New(entity.InexactAlarm{}),
			log:   log,
			now:   time.Now,
			arm: func(a entity.InexactAlarm) error {
				return timerSvc.Set(timer.ModeWakeup, a.TriggerAtMillis, constant.InexactAlarmCode)
			},
			cancel:     func() error { return timerSvc.Cancel(constant.InexactAlarmCode) },
			toRecord:   entity.InexactAlarm.ToRecord,
			fromRecord: entity.InexactAlarmFromRecord,
		},
		window: &kindScheduler[entity.WindowAlarm]{
			kind:  constant.KindWindow,
			repo:  alarmRepo,
			state: observable.New(entity.WindowAlarm{}),
			log:   log,
			now:   time.Now,
			arm: func(a entity.WindowAlarm) error {
				return timerSvc.SetWindow(timer.ModeWakeup, a.TriggerAtMillis, a.WindowLengthMillis, constant.WindowAlarmCode)
			},
			cancel:     func() error { return timerSvc.Cancel(constant.WindowAlarmCode) },
			toRecord:   entity.WindowAlarm.ToRecord,
			fromRecord: entity.WindowAlarmFromRecord,
		},
		repeating: &kindScheduler[entity.RepeatingAlarm]{
			kind:  constant.KindRepeating,
			repo:  alarmRepo,
			state: observable.New(entity.RepeatingAlarm{}),
			log:   log,
			now:   time.Now,
			arm: func(a entity.RepeatingAlarm) error {
				return timerSvc.SetRepeating(timer.ModeWakeup, a.TriggerAtMillis, a.IntervalMillis, constant.RepeatingAlarmCode)
			},
			cancel:     func() error { return timerSvc.Cancel(constant.RepeatingAlarmCode) },
			toRecord:   entity.RepeatingAlarm.ToRecord,
			fromRecord: entity.RepeatingAlarmFromRecord,
			// The timer service derives the next occurrence itself.
			rearmPast: true,
		},
	}
}

func (s *inexactAlarmService) GetInexactAlarmState() observable.ReadOnly[entity.InexactAlarm] {
	return s.inexact.state
}

func (s *inexactAlarmService) GetWindowAlarmState() observable.ReadOnly[entity.WindowAlarm] {
	return s.window.state
}

func (s *inexactAlarmService) GetRepeatingAlarmState() observable.ReadOnly[entity.RepeatingAlarm] {
	return s.repeating.state
}

func (s *inexactAlarmService) ScheduleInexactAlarm(ctx context.Context, alarm entity.InexactAlarm) error {
	return s.inexact.schedule(ctx, alarm)
}

func (s *inexactAlarmService) ClearInexactAlarm(ctx context.Context) error {
	return s.inexact.clear(ctx)
}

func (s *inexactAlarmService) ScheduleWindowAlarm(ctx context.Context, alarm entity.WindowAlarm) error {
	return s.window.schedule(ctx, alarm)
}

func (s *inexactAlarmService) ClearWindowAlarm(ctx context.Context) error {
	return s.window.clear(ctx)
}

func (s *inexactAlarmService) ScheduleRepeatingAlarm(ctx context.Context, alarm entity.RepeatingAlarm) error {
	return s.repeating.schedule(ctx, alarm)
}

func (s *inexactAlarmService) ClearRepeatingAlarm(ctx context.Context) error {
	return s.repeating.clear(ctx)
}

func (s *inexactAlarmService) RescheduleAll(ctx context.Context) error {
	return errors.Join(
		s.inexact.reschedule(ctx),
		s.window.reschedule(ctx),
		s.repeating.reschedule(ctx),
	)
}

func (s *inexactAlarmService) ConsumeFiredInexactAlarm(ctx context.Context, firedAtMillis int64) (bool, error) {
	return s.inexact.consume(ctx, firedAtMillis)
}

func (s *inexactAlarmService) ConsumeFiredWindowAlarm(ctx context.Context, firedAtMillis int64) (bool, error) {
	return s.window.consume(ctx, firedAtMillis)
}
