package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	appErrors "alarmclock/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulePreciseAlarm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	alarm := entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)}

	require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, alarm))

	assert.Equal(t, alarm, f.precise.GetPreciseAlarmState().Get())
	rec, err := f.repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.Equal(t, alarm.TriggerAtMillis, rec.TriggerAtMillis)
	reg, ok := f.timer.reg(constant.PreciseAlarmCode)
	require.True(t, ok)
	assert.Equal(t, "exact", reg.op)
	assert.Equal(t, alarm.TriggerAtMillis, reg.trigger)
}

func TestSchedulePreciseAlarm_PermissionDenied(t *testing.T) {
	ctx := context.Background()
	f := newFixture(false)

	assert.False(t, f.precise.CanScheduleExactAlarms())
	err := f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)})
	assert.ErrorIs(t, err, appErrors.ErrPermissionDenied)

	assert.False(t, f.precise.GetPreciseAlarmState().Get().IsSet())
	rec, err := f.repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.False(t, rec.IsSet())
	assert.Zero(t, f.timer.count())
}

func TestSchedulePreciseAlarm_Unset(t *testing.T) {
	f := newFixture(true)
	err := f.precise.SchedulePreciseAlarm(context.Background(), entity.PreciseAlarm{})
	assert.ErrorIs(t, err, appErrors.ErrInvalidInput)
	assert.Zero(t, f.timer.count())
}

func TestSchedulePreciseAlarm_TimerFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	f.timer.failSet = errors.New("boom")

	err := f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)})
	assert.ErrorIs(t, err, appErrors.ErrTimerService)

	rec, err := f.repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.False(t, rec.IsSet())
	assert.False(t, f.precise.GetPreciseAlarmState().Get().IsSet())
}

func TestSchedulePreciseAlarm_Replaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)

	require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)}))
	require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(2 * time.Hour)}))

	assert.Equal(t, 1, f.timer.count())
	reg, _ := f.timer.reg(constant.PreciseAlarmCode)
	assert.Equal(t, at(2*time.Hour), reg.trigger)
	assert.Equal(t, at(2*time.Hour), f.precise.GetPreciseAlarmState().Get().TriggerAtMillis)
}

func TestClearPreciseAlarm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)}))

	require.NoError(t, f.precise.ClearPreciseAlarm(ctx))
	require.NoError(t, f.precise.ClearPreciseAlarm(ctx))

	assert.False(t, f.precise.GetPreciseAlarmState().Get().IsSet())
	rec, err := f.repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.False(t, rec.IsSet())
	_, ok := f.timer.reg(constant.PreciseAlarmCode)
	assert.False(t, ok)
}

func TestPreciseRescheduleOnRestart(t *testing.T) {
	ctx := context.Background()

	t.Run("future alarm is re-armed", func(t *testing.T) {
		f := newFixture(true)
		require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)}))

		restarted := newFixtureWith(newFakeTimer(true), f.repo)
		require.NoError(t, restarted.precise.RescheduleOnRestart(ctx))

		reg, ok := restarted.timer.reg(constant.PreciseAlarmCode)
		require.True(t, ok)
		assert.Equal(t, at(time.Hour), reg.trigger)
		assert.Equal(t, at(time.Hour), restarted.precise.GetPreciseAlarmState().Get().TriggerAtMillis)
	})

	t.Run("trigger equal to now is stale", func(t *testing.T) {
		f := newFixture(true)
		require.NoError(t, f.repo.Put(ctx, entity.PreciseAlarm{TriggerAtMillis: at(0)}.ToRecord()))

		require.NoError(t, f.precise.RescheduleOnRestart(ctx))

		rec, err := f.repo.Get(ctx, constant.KindPrecise)
		require.NoError(t, err)
		assert.False(t, rec.IsSet())
		assert.Zero(t, f.timer.count())
		assert.False(t, f.precise.GetPreciseAlarmState().Get().IsSet())
	})

	t.Run("revoked capability purges the alarm", func(t *testing.T) {
		f := newFixture(true)
		require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(time.Hour)}))

		restarted := newFixtureWith(newFakeTimer(false), f.repo)
		require.NoError(t, restarted.precise.RescheduleOnRestart(ctx))

		rec, err := f.repo.Get(ctx, constant.KindPrecise)
		require.NoError(t, err)
		assert.False(t, rec.IsSet())
		assert.Zero(t, restarted.timer.count())
	})
}

func TestConsumeFiredPreciseAlarm_StaleFire(t *testing.T) {
	ctx := context.Background()
	f := newFixture(true)
	require.NoError(t, f.precise.SchedulePreciseAlarm(ctx, entity.PreciseAlarm{TriggerAtMillis: at(2 * time.Hour)}))

	consumed, err := f.precise.ConsumeFiredPreciseAlarm(ctx, at(time.Hour))
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.True(t, f.precise.GetPreciseAlarmState().Get().IsSet())

	consumed, err = f.precise.ConsumeFiredPreciseAlarm(ctx, at(2*time.Hour))
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.False(t, f.precise.GetPreciseAlarmState().Get().IsSet())
}
