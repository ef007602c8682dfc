package mlplatform

import (
	"context"
	"fmt"
	"io"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric names exposed by the platform's per-job metrics endpoint.
const (
	metricEpoch = "training_epoch"
	metricLoss  = "training_loss"
)

// TrainingMetrics is one sample of training progress.
type TrainingMetrics struct {
	Epoch float64
	Loss  float64
}

// scrapeTrainingMetrics performs an HTTP GET to url and extracts the current
// epoch and loss from the Prometheus text exposition.
func (c *Client) scrapeTrainingMetrics(ctx context.Context, url string) (*TrainingMetrics, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	mfs, err := parseMetrics(resp.Body)
	if err != nil {
		return nil, err
	}
	return &TrainingMetrics{
		Epoch: lastValue(mfs[metricEpoch]),
		Loss:  lastValue(mfs[metricLoss]),
	}, nil
}

// parseMetrics decodes a Prometheus text exposition from r into metric
// families. A partial result with a non-fatal parse warning is still
// returned successfully.
func parseMetrics(r io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}
	return mfs, nil
}

// lastValue returns the value of the last gauge, counter or untyped metric
// in a family. Returns 0 if mf is nil (metric not present in the scrape).
func lastValue(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var v float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.Gauge != nil:
			v = m.Gauge.GetValue()
		case m.Counter != nil:
			v = m.Counter.GetValue()
		case m.Untyped != nil:
			v = m.Untyped.GetValue()
		}
	}
	return v
}
