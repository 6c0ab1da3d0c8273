package scheduler

import (
	"alarmclock/internal/domain/timer"
	"alarmclock/internal/pkg/logger"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// registration is one armed wake. A fired job compares its registration with
// the current one for the code so a replaced registration never removes its successor.
type registration struct {
	entryID   cron.EntryID
	oneShot   *oneShot
	triggerAt int64
}

// Timer implements timer.Service on top of a robfig/cron scheduler.
// Registrations live in memory and are lost when the process exits.
type Timer struct {
	cron         *cron.Cron
	log          logger.Logger
	exactAllowed bool

	mu     sync.Mutex // protects regs and onFire
	regs   map[int]*registration
	onFire timer.FireHandler
}

var _ timer.Service = (*Timer)(nil)

// NewTimer creates a timer service. exactAllowed is what CanScheduleExact reports.
// Call Start to begin delivering fires.
func NewTimer(exactAllowed bool, log logger.Logger) *Timer {
	return &Timer{
		cron:         cron.New(cron.WithLocation(time.Local)),
		log:          log,
		exactAllowed: exactAllowed,
		regs:         make(map[int]*registration),
	}
}

// SetFireHandler sets the function invoked when a registration fires.
// This is called during dependency setup because the dispatcher is built after the timer.
func (t *Timer) SetFireHandler(handler timer.FireHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onFire = handler
}

// Start starts delivering fires.
func (t *Timer) Start() {
	t.cron.Start()
	t.log.Info("Cron timer started.")
}

// Stop stops the cron scheduler and waits for running fire handlers.
func (t *Timer) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("Cron timer stopped.")
}

func (t *Timer) Set(mode timer.Mode, triggerAtMillis int64, id int) error {
	return t.setOneShot("set", mode, triggerAtMillis, id)
}

func (t *Timer) SetExact(mode timer.Mode, triggerAtMillis int64, id int) error {
	if !t.exactAllowed {
		return fmt.Errorf("exact wake for code %d not permitted", id)
	}
	return t.setOneShot("set_exact", mode, triggerAtMillis, id)
}

// SetWindow fires at the start of the window, which is always inside it.
func (t *Timer) SetWindow(mode timer.Mode, triggerAtMillis, windowLengthMillis int64, id int) error {
	if windowLengthMillis < 0 {
		return fmt.Errorf("negative window length %d for code %d", windowLengthMillis, id)
	}
	return t.setOneShot("set_window", mode, triggerAtMillis, id)
}

func (t *Timer) SetRepeating(mode timer.Mode, triggerAtMillis, intervalMillis int64, id int) error {
	if intervalMillis <= 0 {
		return fmt.Errorf("non-positive interval %d for code %d", intervalMillis, id)
	}
	sched := &every{
		First:    time.UnixMilli(triggerAtMillis),
		Interval: time.Duration(intervalMillis) * time.Millisecond,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(id)
	reg := &registration{triggerAt: triggerAtMillis}
	reg.entryID = t.cron.Schedule(sched, cron.FuncJob(func() {
		// cron does not hand the occurrence to the job; the latest one at or before now is it.
		at := sched.Next(time.Now().Add(-sched.Interval))
		t.fire(id, reg, at.UnixMilli())
	}))
	t.regs[id] = reg
	t.log.Info(fmt.Sprintf("Registered repeating wake code=%d mode=%s first=%d interval=%dms (entry %d)", id, mode, triggerAtMillis, intervalMillis, reg.entryID))
	return nil
}

// Cancel removes the registration for id. Unknown ids are a no-op.
func (t *Timer) Cancel(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.removeLocked(id) {
		t.log.Info(fmt.Sprintf("Cancelled wake code=%d", id))
	} else {
		t.log.Debug(fmt.Sprintf("No wake registered for code=%d to cancel.", id))
	}
	return nil
}

func (t *Timer) CanScheduleExact() bool {
	return t.exactAllowed
}

// Registered reports whether a registration for id is outstanding. Useful for debugging and tests.
func (t *Timer) Registered(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.regs[id]
	return ok
}

// Entries returns the scheduled cron entries.
func (t *Timer) Entries() []cron.Entry {
	return t.cron.Entries()
}

func (t *Timer) setOneShot(op string, mode timer.Mode, triggerAtMillis int64, id int) error {
	sched := &oneShot{At: time.UnixMilli(triggerAtMillis)}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.removeLocked(id)
	reg := &registration{oneShot: sched, triggerAt: triggerAtMillis}
	reg.entryID = t.cron.Schedule(sched, cron.FuncJob(func() {
		t.fire(id, reg, triggerAtMillis)
	}))
	t.regs[id] = reg
	t.log.Info(fmt.Sprintf("Registered %s wake code=%d mode=%s at=%d (entry %d)", op, id, mode, triggerAtMillis, reg.entryID))
	return nil
}

// fire runs on a cron job goroutine.
func (t *Timer) fire(id int, reg *registration, triggerAt int64) {
	t.mu.Lock()
	if t.regs[id] != reg {
		// Replaced or cancelled after cron picked the job.
		t.mu.Unlock()
		t.log.Debug(fmt.Sprintf("Dropping fire for superseded registration code=%d", id))
		return
	}
	if reg.oneShot != nil {
		t.removeLocked(id)
	}
	handler := t.onFire
	t.mu.Unlock()

	t.log.Info(fmt.Sprintf("Wake fired code=%d at=%d", id, triggerAt))
	if handler == nil {
		t.log.Warn(fmt.Sprintf("No fire handler set, dropping fire for code=%d", id))
		return
	}
	handler(timer.FireEvent{Code: id, TriggerAtMillis: triggerAt})
}

func (t *Timer) removeLocked(id int) bool {
	reg, ok := t.regs[id]
	if !ok {
		return false
	}
	t.cron.Remove(reg.entryID)
	delete(t.regs, id)
	return true
}
