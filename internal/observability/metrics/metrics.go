package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "alarm_"

// Schedule results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultDenied  = "denied"
)

// Restart reschedule outcomes.
const (
	OutcomeRearmed = "rearmed"
	OutcomeStale   = "stale"
	OutcomeUnset   = "unset"
)

var (
	registerOnce sync.Once

	scheduleTotal   *prometheus.CounterVec
	clearTotal      *prometheus.CounterVec
	fireTotal       *prometheus.CounterVec
	staleFireTotal  *prometheus.CounterVec
	rescheduleTotal *prometheus.CounterVec
	ringing         prometheus.Gauge
)

// Init registers the alarm metrics with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		scheduleTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "schedule_total",
				Help: "Total schedule operations by kind and result",
			},
			[]string{"kind", "result"},
		)
		clearTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "clear_total",
				Help: "Total clear operations by kind",
			},
			[]string{"kind"},
		)
		fireTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "fire_total",
				Help: "Total alarm fires by kind",
			},
			[]string{"kind"},
		)
		staleFireTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stale_fire_total",
				Help: "Fires ignored because a newer schedule replaced the fired one",
			},
			[]string{"kind"},
		)
		rescheduleTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reschedule_total",
				Help: "Restart reschedule decisions by kind and outcome",
			},
			[]string{"kind", "outcome"},
		)
		ringing = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "ringtone_playing",
			Help: "1 while an alarm ringtone is playing",
		})

		prometheus.MustRegister(
			scheduleTotal,
			clearTotal,
			fireTotal,
			staleFireTotal,
			rescheduleTotal,
			ringing,
		)
	})
}

// IncSchedule counts a schedule attempt. result is ResultSuccess, ResultError or ResultDenied.
func IncSchedule(kind, result string) {
	if scheduleTotal != nil {
		scheduleTotal.WithLabelValues(kind, result).Inc()
	}
}

func IncClear(kind string) {
	if clearTotal != nil {
		clearTotal.WithLabelValues(kind).Inc()
	}
}

func IncFire(kind string) {
	if fireTotal != nil {
		fireTotal.WithLabelValues(kind).Inc()
	}
}

func IncStaleFire(kind string) {
	if staleFireTotal != nil {
		staleFireTotal.WithLabelValues(kind).Inc()
	}
}

// IncReschedule counts one restart decision for kind.
func IncReschedule(kind, outcome string) {
	if rescheduleTotal != nil {
		rescheduleTotal.WithLabelValues(kind, outcome).Inc()
	}
}

// SetRinging flips the ringtone gauge.
func SetRinging(on bool) {
	if ringing == nil {
		return
	}
	if on {
		ringing.Set(1)
	} else {
		ringing.Set(0)
	}
}
