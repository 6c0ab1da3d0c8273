package handler

import (
	"alarmclock/internal/application/dto"
	"alarmclock/internal/application/service"
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	appErrors "alarmclock/internal/pkg/errors"
	"alarmclock/internal/pkg/logger"
	"alarmclock/internal/pkg/timeutil"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// AlarmHandler serves the alarm, ringtone and system endpoints.
type AlarmHandler struct {
	precise    service.PreciseAlarmService
	inexact    service.InexactAlarmService
	dispatcher service.AlarmDispatcher
	display    dto.DisplayOptions
	now        func() time.Time
	log        logger.Logger
}

// NewAlarmHandler creates a new AlarmHandler.
func NewAlarmHandler(
	precise service.PreciseAlarmService,
	inexact service.InexactAlarmService,
	dispatcher service.AlarmDispatcher,
	display dto.DisplayOptions,
	log logger.Logger,
) *AlarmHandler {
	return &AlarmHandler{
		precise:    precise,
		inexact:    inexact,
		dispatcher: dispatcher,
		display:    display,
		now:        time.Now,
		log:        log.With("http"),
	}
}

// ListAlarms handles GET /alarms.
func (h *AlarmHandler) ListAlarms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot())
}

func (h *AlarmHandler) snapshot() dto.AlarmsResponse {
	return dto.AlarmsResponse{
		Precise:   dto.ToPreciseResponse(h.precise.GetPreciseAlarmState().Get(), h.display),
		Inexact:   dto.ToInexactResponse(h.inexact.GetInexactAlarmState().Get(), h.display),
		Window:    dto.ToWindowResponse(h.inexact.GetWindowAlarmState().Get(), h.display),
		Repeating: dto.ToRepeatingResponse(h.inexact.GetRepeatingAlarmState().Get(), h.display),
	}
}

// PrecisePermission handles GET /alarms/precise/permission.
func (h *AlarmHandler) PrecisePermission(c echo.Context) error {
	resp := dto.PermissionResponse{CanScheduleExact: h.precise.CanScheduleExactAlarms()}
	if !resp.CanScheduleExact {
		resp.SettingsHint = dto.ExactAlarmSettingsHint
	}
	return c.JSON(http.StatusOK, resp)
}

// ScheduleAlarm handles PUT /alarms/:kind.
func (h *AlarmHandler) ScheduleAlarm(c echo.Context) error {
	kind, ok := constant.ParseKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fmt.Sprintf("unknown alarm kind %q", c.Param("kind"))})
	}

	var req dto.ScheduleAlarmRequest
	if err := c.Bind(&req); err != nil {
		h.log.Warn(fmt.Sprintf("Malformed schedule request for %s alarm: %v", kind, err))
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
	}
	if err := req.Validate(kind, h.display.Use24HourClock); err != nil {
		return h.errorResponse(c, err)
	}

	ctx := c.Request().Context()
	trig := req.TriggerAtMillis(h.now().In(h.location()), h.display.Use24HourClock)

	var (
		err  error
		resp dto.AlarmResponse
	)
	switch kind {
	case constant.KindPrecise:
		a := entity.PreciseAlarm{TriggerAtMillis: trig}
		err = h.precise.SchedulePreciseAlarm(ctx, a)
		resp = dto.ToPreciseResponse(a, h.display)
	case constant.KindInexact:
		a := entity.InexactAlarm{TriggerAtMillis: trig}
		err = h.inexact.ScheduleInexactAlarm(ctx, a)
		resp = dto.ToInexactResponse(a, h.display)
	case constant.KindWindow:
		a := entity.WindowAlarm{TriggerAtMillis: trig, WindowLengthMillis: timeutil.MinutesToMillis(req.WindowMinutes)}
		err = h.inexact.ScheduleWindowAlarm(ctx, a)
		resp = dto.ToWindowResponse(a, h.display)
	case constant.KindRepeating:
		a := entity.RepeatingAlarm{TriggerAtMillis: trig, IntervalMillis: timeutil.MinutesToMillis(req.IntervalMinutes)}
		err = h.inexact.ScheduleRepeatingAlarm(ctx, a)
		resp = dto.ToRepeatingResponse(a, h.display)
	}
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ClearAlarm handles DELETE /alarms/:kind.
func (h *AlarmHandler) ClearAlarm(c echo.Context) error {
	kind, ok := constant.ParseKind(c.Param("kind"))
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: fmt.Sprintf("unknown alarm kind %q", c.Param("kind"))})
	}

	ctx := c.Request().Context()
	var err error
	switch kind {
	case constant.KindPrecise:
		err = h.precise.ClearPreciseAlarm(ctx)
	case constant.KindInexact:
		err = h.inexact.ClearInexactAlarm(ctx)
	case constant.KindWindow:
		err = h.inexact.ClearWindowAlarm(ctx)
	case constant.KindRepeating:
		err = h.inexact.ClearRepeatingAlarm(ctx)
	}
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// StreamAlarms handles GET /alarms/events. Every state change of any kind
// produces one "alarms" event carrying the full snapshot.
func (h *AlarmHandler) StreamAlarms(c echo.Context) error {
	ctx := c.Request().Context()
	changed := make(chan struct{}, 1)
	watch(h.precise.GetPreciseAlarmState().Subscribe(ctx), changed)
	watch(h.inexact.GetInexactAlarmState().Subscribe(ctx), changed)
	watch(h.inexact.GetWindowAlarmState().Subscribe(ctx), changed)
	watch(h.inexact.GetRepeatingAlarmState().Subscribe(ctx), changed)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changed:
			payload, err := json.Marshal(h.snapshot())
			if err != nil {
				h.log.Error("Failed to encode alarm snapshot", err)
				return nil
			}
			if _, err := fmt.Fprintf(w, "event: alarms\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// watch forwards every value on ch as a coalesced signal on changed. It ends
// when ch is closed by the subscription context.
func watch[T any](ch <-chan T, changed chan<- struct{}) {
	go func() {
		for range ch {
			select {
			case changed <- struct{}{}:
			default:
			}
		}
	}()
}

// StopRingtone handles POST /ringtone/stop.
func (h *AlarmHandler) StopRingtone(c echo.Context) error {
	stopped := h.dispatcher.StopRingtone()
	return c.JSON(http.StatusOK, dto.RingtoneResponse{Ringing: h.dispatcher.IsRinging(), Stopped: stopped})
}

// Ringtone handles GET /ringtone.
func (h *AlarmHandler) Ringtone(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.RingtoneResponse{Ringing: h.dispatcher.IsRinging()})
}

// Boot handles POST /system/boot.
func (h *AlarmHandler) Boot(c echo.Context) error {
	if err := h.dispatcher.OnBoot(c.Request().Context()); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, h.snapshot())
}

// Fire handles POST /system/fire/:code.
func (h *AlarmHandler) Fire(c echo.Context) error {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("invalid code %q", c.Param("code"))})
	}
	if err := h.dispatcher.OnFire(c.Request().Context(), code); err != nil {
		return h.errorResponse(c, err)
	}
	kind, _ := constant.KindForCode(code)
	return c.JSON(http.StatusOK, dto.FireResponse{Code: code, Kind: kind.String()})
}

func (h *AlarmHandler) location() *time.Location {
	if h.display.Location == nil {
		return time.Local
	}
	return h.display.Location
}

func (h *AlarmHandler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appErrors.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error(), Hint: dto.ExactAlarmSettingsHint})
	case errors.Is(err, appErrors.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, appErrors.ErrUnknownAlarmCode):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		h.log.Error(fmt.Sprintf("Request %s %s failed", c.Request().Method, c.Path()), err)
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: appErrors.ErrInternalServer.Error()})
	}
}
