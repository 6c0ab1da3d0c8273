package memory

import (
	"context"
	"testing"

	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlarmRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAlarmRepository()

	rec, err := repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.False(t, rec.IsSet())

	in := entity.PreciseAlarm{TriggerAtMillis: 5}.ToRecord()
	require.NoError(t, repo.Put(ctx, in))
	in.TriggerAtMillis = 99 // the store keeps its own copy

	rec, err = repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.TriggerAtMillis)

	require.NoError(t, repo.Clear(ctx, constant.KindPrecise))
	require.NoError(t, repo.Clear(ctx, constant.KindPrecise))
	rec, err = repo.Get(ctx, constant.KindPrecise)
	require.NoError(t, err)
	assert.False(t, rec.IsSet())
}

func TestAlarmRepository_PutNil(t *testing.T) {
	repo := NewAlarmRepository()
	assert.ErrorIs(t, repo.Put(context.Background(), nil), repository.ErrNilRecord)
}
