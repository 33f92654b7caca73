package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := NewWithRegisterer("booking_directory", prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/bookings/{booking_id}", 404, 15*time.Millisecond)
	m.RecordHTTPRequest("GET", "/bookings/{booking_id}", 404, 20*time.Millisecond)
	m.RecordHTTPRequest("GET", "/bookings/{booking_id}", 200, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/bookings/{booking_id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/bookings/{booking_id}", "200")))
}

func TestRecordStorageOperation(t *testing.T) {
	m := NewWithRegisterer("booking_directory", prometheus.NewRegistry())

	m.RecordStorageOperation("sheets", "snapshot", nil, time.Second)
	m.RecordStorageOperation("sheets", "append", errors.New("quota exceeded"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageOperationsTotal.WithLabelValues("sheets", "snapshot", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storageOperationsTotal.WithLabelValues("sheets", "append", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.storageOperationsTotal.WithLabelValues("sheets", "append", "ok")))
}
