package service

import (
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/pkg/observable"
	"context"
)

// InexactAlarmService defines the operations on the three approximate (rest) alarms.
// Each kind is independent: scheduling or clearing one never touches another.
type InexactAlarmService interface {
	GetInexactAlarmState() observable.ReadOnly[entity.InexactAlarm]
	GetWindowAlarmState() observable.ReadOnly[entity.WindowAlarm]
	GetRepeatingAlarmState() observable.ReadOnly[entity.RepeatingAlarm]

	ScheduleInexactAlarm(ctx context.Context, alarm entity.InexactAlarm) error
	ClearInexactAlarm(ctx context.Context) error
	ScheduleWindowAlarm(ctx context.Context, alarm entity.WindowAlarm) error
	ClearWindowAlarm(ctx context.Context) error
	ScheduleRepeatingAlarm(ctx context.Context, alarm entity.RepeatingAlarm) error
	ClearRepeatingAlarm(ctx context.Context) error

	// RescheduleAll restores all three kinds from the store. Single-shot kinds
	// whose trigger is not in the future are purged; the repeating kind is
	// re-armed whenever it is set. A failure on one kind does not stop the others.
	RescheduleAll(ctx context.Context) error

	// ConsumeFiredInexactAlarm and ConsumeFiredWindowAlarm clear a fired
	// single-shot kind. They report false when the fire was for a superseded schedule.
	ConsumeFiredInexactAlarm(ctx context.Context, firedAtMillis int64) (bool, error)
	ConsumeFiredWindowAlarm(ctx context.Context, firedAtMillis int64) (bool, error)
}
