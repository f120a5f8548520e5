package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/mastodon"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	StatusOK           = "ok"
	StatusError        = "error"
	StatusNotFound     = "not_found"
	StatusTimeout      = "timeout"
	StatusRejected     = "rejected"
	StatusMalformed    = "malformed"
	StatusUnanalyzable = "unanalyzable"
)

// Maps an error to a low-cardinality status label.
func Status(err error) string {
	if err == nil {
		return StatusOK
	}
	var nfe *mastodon.NotFoundError
	var te *mastodon.TransportError
	var ae *mastodon.APIError
	var ee *mastodon.EmptyResponseError
	var me *mastodon.MalformedResponseError
	var ue *indicators.UnanalyzableError
	switch {
	case errors.As(err, &nfe):
		return StatusNotFound
	case errors.As(err, &te) && te.Timeout:
		return StatusTimeout
	case errors.As(err, &ae):
		return StatusRejected
	case errors.As(err, &ee), errors.As(err, &me):
		return StatusMalformed
	case errors.As(err, &ue):
		return StatusUnanalyzable
	}
	return StatusError
}

// Writes everything registered with the default registry to path, in the
// text exposition format (for node_exporter's textfile collector). A blank
// path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		slog.Debug("metrics textfile disabled")
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	slog.Info("wrote metrics textfile", "path", path)
	return nil
}

// Current value of every counter series whose metric name starts with prefix,
// keyed like `name{label="value",...}`. Non-counter families are skipped.
func CounterValues(g prometheus.Gatherer, prefix string) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER || !strings.HasPrefix(mf.GetName(), prefix) {
			continue
		}
		for _, m := range mf.GetMetric() {
			out[seriesKey(mf.GetName(), m.GetLabel())] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}

func seriesKey(name string, labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels))
	for _, lp := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}
