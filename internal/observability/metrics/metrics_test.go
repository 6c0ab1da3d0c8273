package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(scheduleTotal.WithLabelValues("window", ResultSuccess))
	IncSchedule("window", ResultSuccess)
	assert.Equal(t, before+1, testutil.ToFloat64(scheduleTotal.WithLabelValues("window", ResultSuccess)))

	before = testutil.ToFloat64(rescheduleTotal.WithLabelValues("inexact", OutcomeStale))
	IncReschedule("inexact", OutcomeStale)
	assert.Equal(t, before+1, testutil.ToFloat64(rescheduleTotal.WithLabelValues("inexact", OutcomeStale)))

	before = testutil.ToFloat64(fireTotal.WithLabelValues("repeating"))
	IncFire("repeating")
	assert.Equal(t, before+1, testutil.ToFloat64(fireTotal.WithLabelValues("repeating")))

	SetRinging(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(ringing))
	SetRinging(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(ringing))
}
