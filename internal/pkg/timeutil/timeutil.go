// Package timeutil turns user time-of-day input into absolute trigger instants and back into text.
package timeutil

import (
	"fmt"
	"time"
)

const (
	// MinWindowLengthMinutes is the shortest window a window alarm accepts.
	MinWindowLengthMinutes = 10
	// MinIntervalMinutes is the shortest repeat interval a repeating alarm accepts.
	MinIntervalMinutes = 1
	// MaxWindowLengthMinutes and MaxIntervalMinutes cap both lengths at one week.
	MaxWindowLengthMinutes = 7 * 24 * 60
	MaxIntervalMinutes     = 7 * 24 * 60
)

// ToAbsoluteTriggerMillis returns the epoch millis of the next hour:minute in
// now's location. A time of day that is not strictly after now rolls to tomorrow.
func ToAbsoluteTriggerMillis(now time.Time, hour, minute int) int64 {
	return NextOccurrence(now, hour, minute).UnixMilli()
}

// NextOccurrence is ToAbsoluteTriggerMillis returning a time.Time.
// time.Date normalizes across DST changes, so the wall clock is kept.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return at
}

// MinutesToMillis converts minutes to milliseconds.
func MinutesToMillis(n int64) int64 {
	return n * int64(time.Minute/time.Millisecond)
}

// MillisToMinutes converts milliseconds to whole minutes.
func MillisToMinutes(ms int64) int64 {
	return ms / int64(time.Minute/time.Millisecond)
}

// FormatForDisplay renders a trigger time in loc. When secondaryMillis is
// given and non-zero (a window length or repeat interval) it is appended in minutes.
func FormatForDisplay(triggerAtMillis int64, loc *time.Location, use24HourClock bool, secondaryMillis ...int64) string {
	if loc == nil {
		loc = time.Local
	}
	layout := "3:04 PM"
	if use24HourClock {
		layout = "15:04"
	}
	text := time.UnixMilli(triggerAtMillis).In(loc).Format("Mon Jan 2 " + layout)
	if len(secondaryMillis) > 0 && secondaryMillis[0] != 0 {
		text += fmt.Sprintf(" (%d min)", MillisToMinutes(secondaryMillis[0]))
	}
	return text
}

// IsValidHour checks hour against the 24-hour (0-23) or 12-hour (1-12) range.
func IsValidHour(hour int, use24HourClock bool) bool {
	if use24HourClock {
		return hour >= 0 && hour <= 23
	}
	return hour >= 1 && hour <= 12
}

func IsValidMinute(minute int) bool {
	return minute >= 0 && minute <= 59
}

func IsValidWindowLength(minutes int64) bool {
	return minutes >= MinWindowLengthMinutes && minutes <= MaxWindowLengthMinutes
}

func IsValidInterval(minutes int64) bool {
	return minutes >= MinIntervalMinutes && minutes <= MaxIntervalMinutes
}

// ToHour24 converts a 12-hour clock hour (1-12) to 0-23.
func ToHour24(hour12 int, isAM bool) int {
	h := hour12 % 12
	if !isAM {
		h += 12
	}
	return h
}
