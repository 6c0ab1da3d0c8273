package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"alarmclock/internal/application/dto"
	"alarmclock/internal/application/service"
	"alarmclock/internal/infrastructure/database/memory"
	"alarmclock/internal/infrastructure/notify"
	"alarmclock/internal/infrastructure/ringtone"
	"alarmclock/internal/infrastructure/scheduler"
	"alarmclock/internal/interfaces/api/handler"
	"alarmclock/internal/observability/metrics"
	"alarmclock/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	metrics.Init()
	log := logger.Nop()
	tm := scheduler.NewTimer(true, log)
	repo := memory.NewAlarmRepository()
	precise := service.NewPreciseAlarmService(tm, repo, log)
	inexact := service.NewInexactAlarmService(tm, repo, log)
	dispatcher := service.NewAlarmDispatcher(precise, inexact, notify.NewLogNotifier(log), ringtone.NewPlayer(nil, log), log)

	return NewRouter(&Config{
		AlarmHandler: handler.NewAlarmHandler(precise, inexact, dispatcher, dto.DisplayOptions{Use24HourClock: true}, log),
		Logger:       log,
	})
}

func TestNewRouter(t *testing.T) {
	e := newTestRouter(t)

	tests := []struct {
		method, path string
		want         int
	}{
		{http.MethodGet, "/alarms", http.StatusOK},
		{http.MethodGet, "/alarms/precise/permission", http.StatusOK},
		{http.MethodDelete, "/alarms/inexact", http.StatusNoContent},
		{http.MethodGet, "/ringtone", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/callback", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, rec.Code, "%s %s", tt.method, tt.path)
	}
}
