package service

import (
	"alarmclock/internal/domain/timer"
	"context"
)

// Notification is a user-visible alert raised when an alarm fires.
type Notification struct {
	ChannelID   string
	ChannelName string
	// ID is the alarm kind's identifying code. A newer alert with the same ID replaces the older one.
	ID      int
	Message string
}

// Notifier posts notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Ringtone is a sound that is currently playing.
type Ringtone interface {
	Stop() error
}

// RingtonePlayer starts the alarm sound. The returned Ringtone plays until stopped.
type RingtonePlayer interface {
	Play() (Ringtone, error)
}

// AlarmDispatcher reacts to system events: boot completion and alarm fires.
type AlarmDispatcher interface {
	// OnBoot restores every kind from the store. Running it twice is harmless.
	OnBoot(ctx context.Context) error
	// OnFire handles a fire for an identifying code with no trigger information.
	OnFire(ctx context.Context, code int) error
	// HandleFire is the timer.FireHandler wired into the timer service.
	HandleFire(ev timer.FireEvent)
	// StopRingtone silences the current ringtone and reports whether one was playing.
	StopRingtone() bool
	IsRinging() bool
}
