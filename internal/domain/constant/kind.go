package constant

// AlarmKind names one of the four alarm kinds. It is also the store key.
type AlarmKind string

const (
	KindPrecise   AlarmKind = "precise"   // single exact alarm (study)
	KindInexact   AlarmKind = "inexact"   // single approximate alarm (rest)
	KindWindow    AlarmKind = "window"    // approximate alarm within a window
	KindRepeating AlarmKind = "repeating" // approximate repeating alarm
)

// Identifying codes used as timer service registration keys. They are stable
// across restarts; changing one orphans the registrations made with it.
const (
	PreciseAlarmCode   = 1001
	InexactAlarmCode   = 1002
	WindowAlarmCode    = 1003
	RepeatingAlarmCode = 1004
)

// AllKinds lists every kind in display order.
var AllKinds = []AlarmKind{KindPrecise, KindInexact, KindWindow, KindRepeating}

// Code returns the identifying code of k, or 0 for an unknown kind.
func (k AlarmKind) Code() int {
	switch k {
	case KindPrecise:
		return PreciseAlarmCode
	case KindInexact:
		return InexactAlarmCode
	case KindWindow:
		return WindowAlarmCode
	case KindRepeating:
		return RepeatingAlarmCode
	}
	return 0
}

// SingleShot reports whether a fire consumes the alarm.
func (k AlarmKind) SingleShot() bool {
	return k != KindRepeating
}

func (k AlarmKind) String() string {
	return string(k)
}

// KindForCode maps an identifying code back to its kind.
func KindForCode(code int) (AlarmKind, bool) {
	switch code {
	case PreciseAlarmCode:
		return KindPrecise, true
	case InexactAlarmCode:
		return KindInexact, true
	case WindowAlarmCode:
		return KindWindow, true
	case RepeatingAlarmCode:
		return KindRepeating, true
	}
	return "", false
}

// ParseKind validates a kind name coming from outside (URL path, config).
func ParseKind(s string) (AlarmKind, bool) {
	k := AlarmKind(s)
	if k.Code() == 0 {
		return "", false
	}
	return k, true
}
