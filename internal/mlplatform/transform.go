package mlplatform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxRUL is the fixed scaling constant shared with the training scripts:
// the model predicts RUL as a fraction of this value.
const MaxRUL = 130.0

// TransformSpec describes a batch-transform submission: the registered model
// to run and the object-storage keys of the input table and prediction
// output.
type TransformSpec struct {
	JobName   string `json:"job_name"`
	ModelName string `json:"model_name"`
	InputKey  string `json:"input_key"`
	OutputKey string `json:"output_key"`
}

// TransformJob is the platform's view of a batch-transform job.
type TransformJob struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	OutputKey string `json:"output_key"`
	Message   string `json:"message"`
}

// SubmitTransform submits a batch-transform job over an uploaded test table.
func (c *Client) SubmitTransform(ctx context.Context, spec TransformSpec) (*TransformJob, error) {
	var job TransformJob
	if err := c.doJSON(ctx, http.MethodPost, "/v1/transform-jobs", spec, &job); err != nil {
		return nil, err
	}
	slog.Info("mlplatform: transform job submitted",
		"job", job.Name, "model", spec.ModelName, "input", spec.InputKey)
	return &job, nil
}

// GetTransform fetches the current state of a batch-transform job.
func (c *Client) GetTransform(ctx context.Context, name string) (*TransformJob, error) {
	var job TransformJob
	path := "/v1/transform-jobs/" + url.PathEscape(name)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitTransform polls the job until it completes or fails.
func (c *Client) WaitTransform(ctx context.Context, name string, interval time.Duration) (*TransformJob, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.GetTransform(ctx, name)
		if err != nil {
			return nil, err
		}
		switch job.Status {
		case StatusCompleted:
			slog.Info("mlplatform: transform completed", "job", name, "output", job.OutputKey)
			return job, nil
		case StatusFailed:
			return nil, fmt.Errorf("mlplatform: transform job %q failed: %s", name, job.Message)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ParsePredictions decodes batch-transform output — one fractional
// prediction per line — into absolute RUL values scaled by MaxRUL.
func ParsePredictions(data []byte) ([]float64, error) {
	var preds []float64
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("mlplatform: predictions line %d: not a number: %q", line, text)
		}
		preds = append(preds, v*MaxRUL)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mlplatform: read predictions: %w", err)
	}
	return preds, nil
}
