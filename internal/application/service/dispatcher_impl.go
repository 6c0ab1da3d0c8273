package service

import (
	"alarmclock/internal/domain/constant"
	"alarmclock/internal/domain/timer"
	"alarmclock/internal/observability/metrics"
	appErrors "alarmclock/internal/pkg/errors"
	"alarmclock/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	StudyChannelID   = "study_alarm"
	StudyChannelName = "Study Alarms"
	StudyMessage     = "Time to study! :]"

	RestChannelID   = "rest_alarm"
	RestChannelName = "Rest Alarms"
	RestMessage     = "Don't forget to stretch and rest a bit! :]"
)

type fireRoute struct {
	notification Notification
	// consume clears a fired single-shot kind. nil keeps the kind armed.
	consume func(ctx context.Context, firedAtMillis int64) (bool, error)
}

type alarmDispatcher struct {
	precise  PreciseAlarmService
	inexact  InexactAlarmService
	notifier Notifier
	player   RingtonePlayer
	routes   map[constant.AlarmKind]fireRoute
	log      logger.Logger

	ringMu   sync.Mutex
	ringtone Ringtone
}

// NewAlarmDispatcher creates a new instance of AlarmDispatcher implementation.
func NewAlarmDispatcher(
	precise PreciseAlarmService,
	inexact InexactAlarmService,
	notifier Notifier,
	player RingtonePlayer,
	log logger.Logger,
) AlarmDispatcher {
	d := &alarmDispatcher{
		precise:  precise,
		inexact:  inexact,
		notifier: notifier,
		player:   player,
		log:      log.With("dispatcher"),
	}
	d.routes = map[constant.AlarmKind]fireRoute{
		constant.KindPrecise: {
			notification: studyNotification(constant.PreciseAlarmCode),
			consume:      precise.ConsumeFiredPreciseAlarm,
		},
		constant.KindInexact: {
			notification: restNotification(constant.InexactAlarmCode),
			consume:      inexact.ConsumeFiredInexactAlarm,
		},
		constant.KindWindow: {
			notification: restNotification(constant.WindowAlarmCode),
			consume:      inexact.ConsumeFiredWindowAlarm,
		},
		constant.KindRepeating: {
			notification: restNotification(constant.RepeatingAlarmCode),
		},
	}
	return d
}

func studyNotification(id int) Notification {
	return Notification{ChannelID: StudyChannelID, ChannelName: StudyChannelName, ID: id, Message: StudyMessage}
}

func restNotification(id int) Notification {
	return Notification{ChannelID: RestChannelID, ChannelName: RestChannelName, ID: id, Message: RestMessage}
}

func (d *alarmDispatcher) OnBoot(ctx context.Context) error {
	d.log.Info("Restoring alarms from the store")
	err := errors.Join(
		d.precise.RescheduleOnRestart(ctx),
		d.inexact.RescheduleAll(ctx),
	)
	if err != nil {
		d.log.Error("Failed to restore some alarms", err)
		return err
	}
	d.log.Info("Alarms restored")
	return nil
}

func (d *alarmDispatcher) OnFire(ctx context.Context, code int) error {
	return d.fire(ctx, timer.FireEvent{Code: code})
}

func (d *alarmDispatcher) HandleFire(ev timer.FireEvent) {
	if err := d.fire(context.Background(), ev); err != nil {
		d.log.Error(fmt.Sprintf("Failed to handle fire for code %d", ev.Code), err)
	}
}

func (d *alarmDispatcher) fire(ctx context.Context, ev timer.FireEvent) error {
	kind, ok := constant.KindForCode(ev.Code)
	if !ok {
		d.log.Warn(fmt.Sprintf("Fire event with unknown code %d", ev.Code))
		return fmt.Errorf("%w: %d", appErrors.ErrUnknownAlarmCode, ev.Code)
	}
	route := d.routes[kind]
	metrics.IncFire(kind.String())
	d.log.Info(fmt.Sprintf("%s alarm fired", kind))

	if err := d.notifier.Notify(ctx, route.notification); err != nil {
		d.log.Error(fmt.Sprintf("Failed to post %s notification", kind), err)
	}
	d.ring()

	if route.consume == nil {
		return nil
	}
	consumed, err := route.consume(ctx, ev.TriggerAtMillis)
	if err != nil {
		return err
	}
	if !consumed {
		metrics.IncStaleFire(kind.String())
	}
	return nil
}

// ring starts the ringtone, silencing any ringtone still playing from an earlier fire.
func (d *alarmDispatcher) ring() {
	d.ringMu.Lock()
	defer d.ringMu.Unlock()

	d.stopLocked()
	rt, err := d.player.Play()
	if err != nil {
		d.log.Error("Failed to play ringtone", err)
		return
	}
	d.ringtone = rt
	metrics.SetRinging(true)
}

func (d *alarmDispatcher) StopRingtone() bool {
	d.ringMu.Lock()
	defer d.ringMu.Unlock()
	return d.stopLocked()
}

func (d *alarmDispatcher) stopLocked() bool {
	if d.ringtone == nil {
		return false
	}
	if err := d.ringtone.Stop(); err != nil {
		d.log.Warn(fmt.Sprintf("Failed to stop ringtone: %v", err))
	}
	d.ringtone = nil
	metrics.SetRinging(false)
	return true
}

func (d *alarmDispatcher) IsRinging() bool {
	d.ringMu.Lock()
	defer d.ringMu.Unlock()
	return d.ringtone != nil
}
