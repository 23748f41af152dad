package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegistry("clinic-scheduling", prometheus.NewRegistry())

	m.ObserveBooking(BookingOutcomeSuccess)
	m.ObserveBooking(BookingOutcomeConflict)
	m.ObserveBooking(BookingOutcomeConflict)
	m.ObserveDBQuery("INSERT", 3*time.Millisecond, errors.New("boom"))
	m.ObserveHTTPRequest("POST", "/api/v1/appointments", 201, 10*time.Millisecond)
	m.ObserveSlotLockFallback()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingAttempts.WithLabelValues(BookingOutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingAttempts.WithLabelValues(BookingOutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("INSERT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/appointments", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotLockFallbacks))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBooking(BookingOutcomeError)
		m.ObserveDBQuery("SELECT", time.Millisecond, nil)
		m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
		m.ObserveSlotLock(time.Millisecond)
		m.ObserveSlotLockFallback()
	})
}
