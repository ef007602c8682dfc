package mlplatform

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Training job states reported by the platform.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Hyperparameters is the hyperparameter mapping submitted with a training
// job. Field names follow the platform's expected keys.
type Hyperparameters struct {
	Datasets  int    `json:"n_datasets"`
	Epochs    int    `json:"epochs"`
	Optimizer string `json:"optimizer"`
	BatchSize int    `json:"batch_size"`
	GPUCount  int    `json:"gpu_count"`
}

// TrainingSpec describes a training job submission: the entry-point script
// the platform executes, the hyperparameters, and the object-storage
// location of the preprocessed input tables.
type TrainingSpec struct {
	JobName         string          `json:"job_name"`
	EntryPoint      string          `json:"entry_point"`
	InputLocation   string          `json:"input_location"`
	Hyperparameters Hyperparameters `json:"hyperparameters"`
}

// TrainingJob is the platform's view of a submitted job.
type TrainingJob struct {
	Name            string `json:"name"`
	Status          string `json:"status"`
	ModelArtifact   string `json:"model_artifact"`
	MetricsEndpoint string `json:"metrics_endpoint"`
	Message         string `json:"message"`
}

// SubmitTraining submits a training job and returns the platform's job
// reference.
func (c *Client) SubmitTraining(ctx context.Context, spec TrainingSpec) (*TrainingJob, error) {
	var job TrainingJob
	if err := c.doJSON(ctx, http.MethodPost, "/v1/training-jobs", spec, &job); err != nil {
		return nil, err
	}
	slog.Info("mlplatform: training job submitted",
		"job", job.Name, "input", spec.InputLocation, "epochs", spec.Hyperparameters.Epochs)
	return &job, nil
}

// GetTraining fetches the current state of a training job.
func (c *Client) GetTraining(ctx context.Context, name string) (*TrainingJob, error) {
	var job TrainingJob
	path := "/v1/training-jobs/" + url.PathEscape(name)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitTraining polls the job until it completes or fails. While the job is
// running its metrics endpoint, when advertised, is scraped for epoch/loss
// progress. Returns the terminal job state; a failed job is an error.
func (c *Client) WaitTraining(ctx context.Context, name string, interval time.Duration) (*TrainingJob, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.GetTraining(ctx, name)
		if err != nil {
			return nil, err
		}

		switch job.Status {
		case StatusCompleted:
			slog.Info("mlplatform: training completed",
				"job", name, "artifact", job.ModelArtifact)
			return job, nil
		case StatusFailed:
			return nil, fmt.Errorf("mlplatform: training job %q failed: %s", name, job.Message)
		}

		if job.MetricsEndpoint != "" {
			if tm, err := c.scrapeTrainingMetrics(ctx, job.MetricsEndpoint); err != nil {
				slog.Warn("mlplatform: metrics scrape failed", "job", name, "err", err)
			} else {
				slog.Info("mlplatform: training progress",
					"job", name, "epoch", tm.Epoch, "loss", tm.Loss)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
