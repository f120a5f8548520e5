package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/mastodon"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(StatusOK, Status(nil))
	assert.Equal(StatusNotFound, Status(&mastodon.NotFoundError{Nickname: "x", Err: &mastodon.APIError{StatusCode: 404}}))
	assert.Equal(StatusTimeout, Status(&mastodon.TransportError{Timeout: true, Err: context.DeadlineExceeded}))
	assert.Equal(StatusError, Status(&mastodon.TransportError{Err: errors.New("connection refused")}))
	assert.Equal(StatusRejected, Status(fmt.Errorf("wrapped: %w", &mastodon.APIError{StatusCode: 401})))
	assert.Equal(StatusMalformed, Status(&mastodon.EmptyResponseError{}))
	assert.Equal(StatusMalformed, Status(&mastodon.MalformedResponseError{Err: errors.New("eof")}))
	assert.Equal(StatusUnanalyzable, Status(&indicators.UnanalyzableError{AccountID: "1"}))
	assert.Equal(StatusError, Status(errors.New("other")))
}

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "trollhunter_metrics_test_total",
	Help: "Counter registered only by this test",
})

func TestWriteTextfile(t *testing.T) {
	testCounter.Add(3)

	p := filepath.Join(t.TempDir(), "trollhunter.prom")
	require.NoError(t, WriteTextfile(p))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "trollhunter_metrics_test_total 3")

	assert.NoError(t, WriteTextfile(""))
}

var testVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trollhunter_metrics_test_vec_total",
	Help: "Labeled counter registered only by this test",
}, []string{"kind", "outcome"})

func TestCounterValues(t *testing.T) {
	assert := assert.New(t)

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "trollhunter_fetches_total", Help: "x"}, []string{"kind", "outcome"})
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "trollhunter_gauge", Help: "x"})
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total", Help: "x"})
	reg.MustRegister(c, g, other)

	c.WithLabelValues("context", StatusTimeout).Inc()
	c.WithLabelValues("context", StatusOK).Add(2)
	g.Set(5)
	other.Inc()

	vals, err := CounterValues(reg, "trollhunter_")
	require.NoError(t, err)
	assert.Equal(map[string]float64{
		`trollhunter_fetches_total{kind="context",outcome="ok"}`:      2,
		`trollhunter_fetches_total{kind="context",outcome="timeout"}`: 1,
	}, vals)

	testVec.WithLabelValues("lookup", StatusOK).Inc()
	vals, err = CounterValues(prometheus.DefaultGatherer, "trollhunter_metrics_test_vec")
	require.NoError(t, err)
	assert.Equal(1.0, vals[`trollhunter_metrics_test_vec_total{kind="lookup",outcome="ok"}`])
}
