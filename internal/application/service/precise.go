package service

import (
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/pkg/observable"
	"context"
)

// PreciseAlarmService defines the operations on the single precise (study) alarm.
type PreciseAlarmService interface {
	// GetPreciseAlarmState returns the observable current value.
	GetPreciseAlarmState() observable.ReadOnly[entity.PreciseAlarm]
	// CanScheduleExactAlarms must be checked before SchedulePreciseAlarm. When it
	// reports false the caller should send the user to grant the capability.
	CanScheduleExactAlarms() bool
	// SchedulePreciseAlarm arms the timer, persists the alarm and updates state.
	// It returns ErrPermissionDenied, with nothing written, if the capability is missing.
	SchedulePreciseAlarm(ctx context.Context, alarm entity.PreciseAlarm) error
	// ClearPreciseAlarm cancels, un-persists and resets the alarm.
	ClearPreciseAlarm(ctx context.Context) error
	// RescheduleOnRestart re-arms a persisted future alarm or purges a stale one.
	RescheduleOnRestart(ctx context.Context) error
	// ConsumeFiredPreciseAlarm clears the alarm after it fired. It reports false
	// when the fire belonged to a superseded schedule.
	ConsumeFiredPreciseAlarm(ctx context.Context, firedAtMillis int64) (bool, error)
}
