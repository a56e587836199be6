package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncSignup()
	m.IncCreated("education")
	m.IncCreated("education")
	m.ObserveHTTP("GET", "/api/v1/users", 200, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Signups))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsCreated.WithLabelValues("education")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/v1/users", "200")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncSignup()
		m.IncLogin("success")
		m.IncDeleted("resume")
		m.IncCascadeDelete()
		m.ObserveHTTP("GET", "/", 200, time.Now())
		m.ObserveRevocationCheck(time.Now())
	})
}
