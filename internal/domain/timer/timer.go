// Package timer describes the host facility that wakes the process at an absolute time.
package timer

// Mode selects how a registration treats a sleeping device.
type Mode int

const (
	// ModeWakeup uses wall-clock time and wakes the device. It is the only mode alarms use.
	ModeWakeup Mode = iota
	// ModeNoWakeup uses wall-clock time and waits for the device to be awake.
	ModeNoWakeup
)

func (m Mode) String() string {
	if m == ModeNoWakeup {
		return "rtc"
	}
	return "rtc_wakeup"
}

// FireEvent is delivered when a registration fires.
type FireEvent struct {
	// Code is the identifying code the registration was made with.
	Code int
	// TriggerAtMillis is the occurrence that fired. For one-shot registrations it
	// equals the trigger passed at registration time. Zero means unknown.
	TriggerAtMillis int64
}

// FireHandler receives fire events.
type FireHandler func(FireEvent)

// Service registers wake requests keyed by identifying code. Registering a code
// again replaces the previous registration for that code.
type Service interface {
	// Set registers an approximate one-shot wake.
	Set(mode Mode, triggerAtMillis int64, id int) error
	// SetExact registers an exact one-shot wake. Callers check CanScheduleExact first.
	SetExact(mode Mode, triggerAtMillis int64, id int) error
	// SetWindow registers a one-shot wake anywhere in [trigger, trigger+windowLength].
	SetWindow(mode Mode, triggerAtMillis, windowLengthMillis int64, id int) error
	// SetRepeating registers an approximate wake every interval from trigger on.
	SetRepeating(mode Mode, triggerAtMillis, intervalMillis int64, id int) error
	// Cancel drops the registration for id. Unknown ids are a no-op.
	Cancel(id int) error
	// CanScheduleExact reports whether exact wakes are permitted.
	CanScheduleExact() bool
}
