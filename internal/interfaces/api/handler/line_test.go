package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"alarmclock/internal/application/dto"
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineHandler_Execute(t *testing.T) {
	s := newTestServer(t, true)
	h := NewLineHandler(nil, s.precise, s.inexact, s.dispatcher, dto.DisplayOptions{Location: time.UTC, Use24HourClock: true}, logger.Nop())
	ctx := context.Background()

	assert.Equal(t, lineHowToUse, h.Execute(ctx, ""))
	assert.Equal(t, lineHowToUse, h.Execute(ctx, "what"))

	status := h.Execute(ctx, "Status")
	assert.Contains(t, status, "precise: not set")
	assert.Contains(t, status, "repeating: not set")

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/alarms/window", `{"hour":7,"minute":0,"window_minutes":10}`).Code)
	assert.Contains(t, h.Execute(ctx, "status"), "window: ")
	assert.NotContains(t, h.Execute(ctx, "status"), "window: not set")

	assert.Equal(t, "The window alarm is cleared.", h.Execute(ctx, "clear window"))
	assert.False(t, s.timer.Registered(constant.WindowAlarmCode))
	assert.Contains(t, h.Execute(ctx, "clear"), "Which alarm?")
	assert.Equal(t, `Unknown alarm "nap".`, h.Execute(ctx, "clear nap"))

	assert.Equal(t, "Nothing is ringing.", h.Execute(ctx, "stop"))
	require.NoError(t, s.dispatcher.OnFire(ctx, constant.RepeatingAlarmCode))
	assert.Contains(t, h.Execute(ctx, "status"), "Ringtone is playing.")
	assert.Equal(t, "Ringtone stopped.", h.Execute(ctx, "stop"))
}
