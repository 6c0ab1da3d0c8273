package entity

import (
	"testing"
	"time"

	"alarmclock/internal/domain/constant"

	"github.com/stretchr/testify/assert"
)

func TestIsSet(t *testing.T) {
	assert.False(t, PreciseAlarm{}.IsSet())
	assert.True(t, PreciseAlarm{TriggerAtMillis: 1}.IsSet())
	assert.False(t, WindowAlarm{WindowLengthMillis: 600000}.IsSet())
	assert.False(t, RepeatingAlarm{IntervalMillis: 3600000}.IsSet())
	assert.True(t, RepeatingAlarm{TriggerAtMillis: -1}.IsSet())
}

func TestIsNotInPastIsStrict(t *testing.T) {
	now := time.UnixMilli(1_000_000)
	assert.True(t, IsNotInPast(InexactAlarm{TriggerAtMillis: 1_000_001}, now))
	assert.False(t, IsNotInPast(InexactAlarm{TriggerAtMillis: 1_000_000}, now))
	assert.False(t, IsNotInPast(WindowAlarm{TriggerAtMillis: 999_999}, now))
}

func TestRecordConversion(t *testing.T) {
	w := WindowAlarm{TriggerAtMillis: 42, WindowLengthMillis: 600000}
	rec := w.ToRecord()
	assert.Equal(t, constant.KindWindow, rec.Kind)
	assert.Equal(t, w, WindowAlarmFromRecord(rec))

	r := RepeatingAlarm{TriggerAtMillis: 7, IntervalMillis: 3600000}
	assert.Equal(t, r, RepeatingAlarmFromRecord(r.ToRecord()))

	assert.Equal(t, constant.KindPrecise, PreciseAlarm{TriggerAtMillis: 1}.ToRecord().Kind)
	assert.Equal(t, constant.KindInexact, InexactAlarm{TriggerAtMillis: 1}.ToRecord().Kind)
}

func TestFromUnsetRecord(t *testing.T) {
	assert.Equal(t, PreciseAlarm{}, PreciseAlarmFromRecord(nil))
	assert.Equal(t, InexactAlarm{}, InexactAlarmFromRecord(&AlarmRecord{Kind: constant.KindInexact}))
	// Leftover secondary fields are meaningless without a trigger.
	assert.Equal(t, WindowAlarm{}, WindowAlarmFromRecord(&AlarmRecord{WindowLengthMillis: 5}))
	assert.Equal(t, RepeatingAlarm{}, RepeatingAlarmFromRecord(&AlarmRecord{IntervalMillis: 5}))
}
