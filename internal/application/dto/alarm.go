package dto

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/entity"
	appErrors "alarmclock/internal/pkg/errors"
	"alarmclock/internal/pkg/timeutil"
	"fmt"
	"time"
)

// ExactAlarmSettingsHint tells the user where to grant the exact alarm capability.
const ExactAlarmSettingsHint = "Exact alarms are not permitted. Set EXACT_ALARMS_ALLOWED=true (the equivalent of granting \"Alarms & reminders\" in system settings) and restart."

// ScheduleAlarmRequest is the DTO for scheduling any alarm kind from an hour and minute.
type ScheduleAlarmRequest struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	// AM is required on a 12-hour clock and ignored on a 24-hour clock.
	AM              *bool `json:"am,omitempty"`
	WindowMinutes   int64 `json:"window_minutes,omitempty"`
	IntervalMinutes int64 `json:"interval_minutes,omitempty"`
}

// Validate checks the request against the clock format and the extra fields kind needs.
func (r ScheduleAlarmRequest) Validate(kind constant.AlarmKind, use24HourClock bool) error {
	if !timeutil.IsValidHour(r.Hour, use24HourClock) {
		return fmt.Errorf("%w: hour %d out of range", appErrors.ErrInvalidInput, r.Hour)
	}
	if !timeutil.IsValidMinute(r.Minute) {
		return fmt.Errorf("%w: minute %d out of range", appErrors.ErrInvalidInput, r.Minute)
	}
	if !use24HourClock && r.AM == nil {
		return fmt.Errorf("%w: am must be given on a 12-hour clock", appErrors.ErrInvalidInput)
	}
	switch kind {
	case constant.KindWindow:
		if !timeutil.IsValidWindowLength(r.WindowMinutes) {
			return fmt.Errorf("%w: window must be between %d and %d minutes", appErrors.ErrInvalidInput, timeutil.MinWindowLengthMinutes, timeutil.MaxWindowLengthMinutes)
		}
	case constant.KindRepeating:
		if !timeutil.IsValidInterval(r.IntervalMinutes) {
			return fmt.Errorf("%w: interval must be between %d and %d minutes", appErrors.ErrInvalidInput, timeutil.MinIntervalMinutes, timeutil.MaxIntervalMinutes)
		}
	}
	return nil
}

// TriggerAtMillis resolves the request to the next occurrence of its wall-clock time after now.
func (r ScheduleAlarmRequest) TriggerAtMillis(now time.Time, use24HourClock bool) int64 {
	hour := r.Hour
	if !use24HourClock && r.AM != nil {
		hour = timeutil.ToHour24(r.Hour, *r.AM)
	}
	return timeutil.ToAbsoluteTriggerMillis(now, hour, r.Minute)
}

// AlarmResponse is the DTO for one alarm kind's current state.
type AlarmResponse struct {
	Kind            string `json:"kind"`
	Code            int    `json:"code"`
	Set             bool   `json:"set"`
	TriggerAtMillis int64  `json:"trigger_at_millis,omitempty"`
	WindowMinutes   int64  `json:"window_minutes,omitempty"`
	IntervalMinutes int64  `json:"interval_minutes,omitempty"`
	Display         string `json:"display,omitempty"`
}

// AlarmsResponse is the DTO listing every alarm kind.
type AlarmsResponse struct {
	Precise   AlarmResponse `json:"precise"`
	Inexact   AlarmResponse `json:"inexact"`
	Window    AlarmResponse `json:"window"`
	Repeating AlarmResponse `json:"repeating"`
}

// DisplayOptions controls how trigger times are rendered.
type DisplayOptions struct {
	Location       *time.Location
	Use24HourClock bool
}

func ToPreciseResponse(a entity.PreciseAlarm, opts DisplayOptions) AlarmResponse {
	return toAlarmResponse(constant.KindPrecise, a, 0, opts)
}

func ToInexactResponse(a entity.InexactAlarm, opts DisplayOptions) AlarmResponse {
	return toAlarmResponse(constant.KindInexact, a, 0, opts)
}

func ToWindowResponse(a entity.WindowAlarm, opts DisplayOptions) AlarmResponse {
	resp := toAlarmResponse(constant.KindWindow, a, a.WindowLengthMillis, opts)
	if a.IsSet() {
		resp.WindowMinutes = timeutil.MillisToMinutes(a.WindowLengthMillis)
	}
	return resp
}

func ToRepeatingResponse(a entity.RepeatingAlarm, opts DisplayOptions) AlarmResponse {
	resp := toAlarmResponse(constant.KindRepeating, a, a.IntervalMillis, opts)
	if a.IsSet() {
		resp.IntervalMinutes = timeutil.MillisToMinutes(a.IntervalMillis)
	}
	return resp
}

func toAlarmResponse(kind constant.AlarmKind, a entity.Alarm, secondaryMillis int64, opts DisplayOptions) AlarmResponse {
	resp := AlarmResponse{Kind: kind.String(), Code: kind.Code(), Set: a.IsSet()}
	if !a.IsSet() {
		return resp
	}
	resp.TriggerAtMillis = a.TriggerAt()
	resp.Display = timeutil.FormatForDisplay(a.TriggerAt(), opts.Location, opts.Use24HourClock, secondaryMillis)
	return resp
}

// PermissionResponse is the DTO for the exact alarm capability check.
type PermissionResponse struct {
	CanScheduleExact bool   `json:"can_schedule_exact"`
	SettingsHint     string `json:"settings_hint,omitempty"`
}

// RingtoneResponse is the DTO for the ringtone state.
type RingtoneResponse struct {
	Ringing bool `json:"ringing"`
	// Stopped is only meaningful on the stop endpoint.
	Stopped bool `json:"stopped,omitempty"`
}

// FireResponse is the DTO returned after a fire was delivered.
type FireResponse struct {
	Code int    `json:"code"`
	Kind string `json:"kind"`
}

// ErrorResponse is the DTO for a failed request.
type ErrorResponse struct {
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}
