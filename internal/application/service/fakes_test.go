package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"alarmclock/internal/domain/entity"
	"alarmclock/internal/domain/timer"
	"alarmclock/internal/infrastructure/database/memory"
	"alarmclock/internal/pkg/logger"
)

type fakeRegistration struct {
	op       string
	trigger  int64
	window   int64
	interval int64
}

type fakeTimer struct {
	mu      sync.Mutex
	exact   bool
	failSet error
	regs    map[int]fakeRegistration
	sets    int
}

func newFakeTimer(exact bool) *fakeTimer {
	return &fakeTimer{exact: exact, regs: make(map[int]fakeRegistration)}
}

func (f *fakeTimer) register(id int, r fakeRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet != nil {
		return f.failSet
	}
	f.sets++
	f.regs[id] = r
	return nil
}

func (f *fakeTimer) Set(_ timer.Mode, trig int64, id int) error {
	return f.register(id, fakeRegistration{op: "set", trigger: trig})
}

func (f *fakeTimer) SetExact(_ timer.Mode, trig int64, id int) error {
	if !f.exact {
		return errors.New("exact alarms not allowed")
	}
	return f.register(id, fakeRegistration{op: "exact", trigger: trig})
}

func (f *fakeTimer) SetWindow(_ timer.Mode, trig, window int64, id int) error {
	return f.register(id, fakeRegistration{op: "window", trigger: trig, window: window})
}

func (f *fakeTimer) SetRepeating(_ timer.Mode, trig, interval int64, id int) error {
	return f.register(id, fakeRegistration{op: "repeating", trigger: trig, interval: interval})
}

func (f *fakeTimer) Cancel(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.regs, id)
	return nil
}

func (f *fakeTimer) CanScheduleExact() bool { return f.exact }

func (f *fakeTimer) reg(id int) (fakeRegistration, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.regs[id]
	return r, ok
}

func (f *fakeTimer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.regs)
}

// failingRepo wraps the in-memory store and fails Put while putErr is set.
type failingRepo struct {
	*memory.AlarmRepository
	putErr error
}

func (r *failingRepo) Put(ctx context.Context, rec *entity.AlarmRecord) error {
	if r.putErr != nil {
		return r.putErr
	}
	return r.AlarmRepository.Put(ctx, rec)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeNotifier) all() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.sent...)
}

type fakeRingtone struct {
	stopped bool
}

func (r *fakeRingtone) Stop() error {
	r.stopped = true
	return nil
}

type fakePlayer struct {
	played []*fakeRingtone
}

func (p *fakePlayer) Play() (Ringtone, error) {
	rt := &fakeRingtone{}
	p.played = append(p.played, rt)
	return rt, nil
}

// testNow is a Saturday morning.
var testNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type fixture struct {
	timer    *fakeTimer
	repo     *memory.AlarmRepository
	precise  PreciseAlarmService
	inexact  InexactAlarmService
	notifier *fakeNotifier
	player   *fakePlayer
	dispatch AlarmDispatcher
}

func newFixture(exact bool) *fixture {
	return newFixtureWith(newFakeTimer(exact), memory.NewAlarmRepository())
}

// newFixtureWith builds fresh services over existing collaborators, as a process restart would.
func newFixtureWith(tm *fakeTimer, repo *memory.AlarmRepository) *fixture {
	f := &fixture{
		timer:    tm,
		repo:     repo,
		notifier: &fakeNotifier{},
		player:   &fakePlayer{},
	}
	f.precise = NewPreciseAlarmService(tm, repo, logger.Nop())
	f.inexact = NewInexactAlarmService(tm, repo, logger.Nop())
	f.setClock(testNow)
	f.dispatch = NewAlarmDispatcher(f.precise, f.inexact, f.notifier, f.player, logger.Nop())
	return f
}

func (f *fixture) setClock(now time.Time) {
	clock := func() time.Time { return now }
	f.precise.(*preciseAlarmService).precise.now = clock
	in := f.inexact.(*inexactAlarmService)
	in.inexact.now = clock
	in.window.now = clock
	in.repeating.now = clock
}

func at(d time.Duration) int64 {
	return testNow.Add(d).UnixMilli()
}
