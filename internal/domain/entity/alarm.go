package entity

import (
	"alarmclock/internal/domain/constant"
	"time"
)

// Alarm is the behavior every alarm value shares. The zero value of each kind is "unset".
type Alarm interface {
	IsSet() bool
	TriggerAt() int64
}

// PreciseAlarm fires at the exact requested millisecond.
type PreciseAlarm struct {
	TriggerAtMillis int64 `json:"trigger_at_millis"`
}

// InexactAlarm fires around the requested millisecond.
type InexactAlarm struct {
	TriggerAtMillis int64 `json:"trigger_at_millis"`
}

// WindowAlarm fires somewhere in [TriggerAtMillis, TriggerAtMillis+WindowLengthMillis].
type WindowAlarm struct {
	TriggerAtMillis    int64 `json:"trigger_at_millis"`
	WindowLengthMillis int64 `json:"window_length_millis"`
}

// RepeatingAlarm fires every IntervalMillis starting at TriggerAtMillis.
// TriggerAtMillis may lie in the past; the timer service derives the next occurrence.
type RepeatingAlarm struct {
	TriggerAtMillis int64 `json:"trigger_at_millis"`
	IntervalMillis  int64 `json:"interval_millis"`
}

func (a PreciseAlarm) IsSet() bool      { return a.TriggerAtMillis != 0 }
func (a PreciseAlarm) TriggerAt() int64 { return a.TriggerAtMillis }

func (a InexactAlarm) IsSet() bool      { return a.TriggerAtMillis != 0 }
func (a InexactAlarm) TriggerAt() int64 { return a.TriggerAtMillis }

func (a WindowAlarm) IsSet() bool      { return a.TriggerAtMillis != 0 }
func (a WindowAlarm) TriggerAt() int64 { return a.TriggerAtMillis }

func (a RepeatingAlarm) IsSet() bool      { return a.TriggerAtMillis != 0 }
func (a RepeatingAlarm) TriggerAt() int64 { return a.TriggerAtMillis }

// IsNotInPast reports whether a's trigger is strictly after now.
// A trigger equal to now counts as past.
func IsNotInPast(a Alarm, now time.Time) bool {
	return a.TriggerAt() > now.UnixMilli()
}

// AlarmRecord is the persisted last-requested value of one alarm kind.
type AlarmRecord struct {
	Kind               constant.AlarmKind `gorm:"column:kind;primaryKey"`
	TriggerAtMillis    int64              `gorm:"column:trigger_at_millis"`
	WindowLengthMillis int64              `gorm:"column:window_length_millis"`
	IntervalMillis     int64              `gorm:"column:interval_millis"`
	UpdatedAt          time.Time          `gorm:"column:updated_at"`
}

// TableName specifies the table name for the AlarmRecord entity.
func (AlarmRecord) TableName() string {
	return "alarm_record"
}

// IsSet mirrors the alarm values: a record with a zero trigger is unset.
func (r *AlarmRecord) IsSet() bool {
	return r != nil && r.TriggerAtMillis != 0
}

func (a PreciseAlarm) ToRecord() *AlarmRecord {
	return &AlarmRecord{Kind: constant.KindPrecise, TriggerAtMillis: a.TriggerAtMillis}
}

func (a InexactAlarm) ToRecord() *AlarmRecord {
	return &AlarmRecord{Kind: constant.KindInexact, TriggerAtMillis: a.TriggerAtMillis}
}

func (a WindowAlarm) ToRecord() *AlarmRecord {
	return &AlarmRecord{Kind: constant.KindWindow, TriggerAtMillis: a.TriggerAtMillis, WindowLengthMillis: a.WindowLengthMillis}
}

func (a RepeatingAlarm) ToRecord() *AlarmRecord {
	return &AlarmRecord{Kind: constant.KindRepeating, TriggerAtMillis: a.TriggerAtMillis, IntervalMillis: a.IntervalMillis}
}

// The From*Record helpers return the unset value for a nil or unset record.

func PreciseAlarmFromRecord(r *AlarmRecord) PreciseAlarm {
	if !r.IsSet() {
		return PreciseAlarm{}
	}
	return PreciseAlarm{TriggerAtMillis: r.TriggerAtMillis}
}

func InexactAlarmFromRecord(r *AlarmRecord) InexactAlarm {
	if !r.IsSet() {
		return InexactAlarm{}
	}
	return InexactAlarm{TriggerAtMillis: r.TriggerAtMillis}
}

func WindowAlarmFromRecord(r *AlarmRecord) WindowAlarm {
	if !r.IsSet() {
		return WindowAlarm{}
	}
	return WindowAlarm{TriggerAtMillis: r.TriggerAtMillis, WindowLengthMillis: r.WindowLengthMillis}
}

func RepeatingAlarmFromRecord(r *AlarmRecord) RepeatingAlarm {
	if !r.IsSet() {
		return RepeatingAlarm{}
	}
	return RepeatingAlarm{TriggerAtMillis: r.TriggerAtMillis, IntervalMillis: r.IntervalMillis}
}
