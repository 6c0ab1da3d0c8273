package service

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"
	"alarmclock/internal/observability/metrics"
	appErrors "alarmclock/internal/pkg/errors"
	"alarmclock/internal/pkg/logger"
	"alarmclock/internal/pkg/observable"
	"context"
	"fmt"
	"sync"
	"time"
)

// kindScheduler keeps one alarm kind's timer registration, store record and
// observable state in step. The store is the source of truth; the other two are
// caches rebuilt from it by reschedule.
type kindScheduler[T entity.Alarm] struct {
	kind  constant.AlarmKind
	repo  repository.AlarmRepository
	state *observable.Value[T]
	log   logger.Logger
	now   func() time.Time

	arm        func(T) error // register with the timer service under kind.Code()
	cancel     func() error  // drop the registration for kind.Code()
	toRecord   func(T) *entity.AlarmRecord
	fromRecord func(*entity.AlarmRecord) T
	// rearmPast re-arms a persisted value even when its trigger is behind now.
	rearmPast bool

	// mu makes each operation's timer, store and state steps one unit per kind.
	mu sync.Mutex
}

func (s *kindScheduler[T]) current() T {
	return s.state.Get()
}

func (s *kindScheduler[T]) schedule(ctx context.Context, v T) error {
	if !v.IsSet() {
		return fmt.Errorf("%w: %s alarm has no trigger time", appErrors.ErrInvalidInput, s.kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(ctx, v)
}

func (s *kindScheduler[T]) scheduleLocked(ctx context.Context, v T) error {
	if err := s.arm(v); err != nil {
		metrics.IncSchedule(s.kind.String(), metrics.ResultError)
		s.log.Error(fmt.Sprintf("Failed to register %s alarm with the timer service", s.kind), err)
		return fmt.Errorf("%w: %v", appErrors.ErrTimerService, err)
	}
	if err := s.repo.Put(ctx, s.toRecord(v)); err != nil {
		metrics.IncSchedule(s.kind.String(), metrics.ResultError)
		s.log.Error(fmt.Sprintf("Failed to persist %s alarm", s.kind), err)
		s.restoreTimerLocked()
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.state.Set(v)
	metrics.IncSchedule(s.kind.String(), metrics.ResultSuccess)
	s.log.Info(fmt.Sprintf("Scheduled %s alarm at %s", s.kind, time.UnixMilli(v.TriggerAt()).Format(time.RFC3339)))
	return nil
}

// restoreTimerLocked points the registration back at the current value after
// a failed write, so the armed trigger matches what the store and state hold.
func (s *kindScheduler[T]) restoreTimerLocked() {
	prev := s.current()
	var err error
	if prev.IsSet() {
		err = s.arm(prev)
	} else {
		err = s.cancel()
	}
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to restore %s alarm registration", s.kind), err)
	}
}

func (s *kindScheduler[T]) clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

func (s *kindScheduler[T]) clearLocked(ctx context.Context) error {
	if err := s.cancel(); err != nil {
		s.log.Error(fmt.Sprintf("Failed to cancel %s alarm registration", s.kind), err)
		return fmt.Errorf("%w: %v", appErrors.ErrTimerService, err)
	}
	if err := s.repo.Clear(ctx, s.kind); err != nil {
		s.log.Error(fmt.Sprintf("Failed to clear persisted %s alarm", s.kind), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	var unset T
	s.state.Set(unset)
	metrics.IncClear(s.kind.String())
	s.log.Debug(fmt.Sprintf("Cleared %s alarm", s.kind))
	return nil
}

// reschedule re-derives the timer registration and state from the store.
func (s *kindScheduler[T]) reschedule(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.repo.Get(ctx, s.kind)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to read persisted %s alarm", s.kind), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	v := s.fromRecord(rec)

	switch {
	case v.IsSet() && (s.rearmPast || entity.IsNotInPast(v, s.now())):
		if err := s.scheduleLocked(ctx, v); err != nil {
			return err
		}
		metrics.IncReschedule(s.kind.String(), metrics.OutcomeRearmed)
		return nil
	case v.IsSet():
		s.log.Info(fmt.Sprintf("Persisted %s alarm at %s is in the past, clearing it", s.kind, time.UnixMilli(v.TriggerAt()).Format(time.RFC3339)))
		metrics.IncReschedule(s.kind.String(), metrics.OutcomeStale)
	default:
		metrics.IncReschedule(s.kind.String(), metrics.OutcomeUnset)
	}
	return s.clearLocked(ctx)
}

// consume clears a single-shot kind after it fired. firedAt is the trigger the
// fired registration was armed with; when non-zero and different from the stored
// trigger, the fire belongs to a superseded schedule and nothing is cleared.
func (s *kindScheduler[T]) consume(ctx context.Context, firedAt int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if firedAt != 0 {
		rec, err := s.repo.Get(ctx, s.kind)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to read persisted %s alarm on fire", s.kind), err)
			return false, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
		if stored := s.fromRecord(rec); stored.IsSet() && stored.TriggerAt() != firedAt {
			s.log.Warn(fmt.Sprintf("Ignoring stale %s fire for %d, current schedule is %d", s.kind, firedAt, stored.TriggerAt()))
			return false, nil
		}
	}
	if err := s.clearLocked(ctx); err != nil {
		return false, err
	}
	return true, nil
}
