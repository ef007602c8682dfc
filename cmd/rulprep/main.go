package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rulprep/rulprep/internal/config"
	"github.com/rulprep/rulprep/internal/dataset"
	"github.com/rulprep/rulprep/internal/export"
	"github.com/rulprep/rulprep/internal/mlplatform"
	"github.com/rulprep/rulprep/internal/preprocess"
	"github.com/rulprep/rulprep/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	offline := flag.Bool("offline", false, "stop after local export; skip storage and platform stages")
	watch := flag.Bool("watch", false, "keep running and reprocess when corpus files change")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	slog.Info("rulprep starting", "config", *configPath, "offline", *offline, "watch", *watch)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	slog.Info("config loaded",
		"source_dir", cfg.Data.SourceDir,
		"output_dir", cfg.Data.OutputDir,
		"subsets", subsetsOf(cfg),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *watch {
		if err := runWatch(ctx, cfg); err != nil {
			slog.Error("watch mode failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, *offline); err != nil {
		slog.Error("pipeline failed", "err", err)
		os.Exit(1)
	}
	slog.Info("rulprep finished")
}

// subsetsOf returns the configured subset names, defaulting to the full corpus.
func subsetsOf(cfg *config.Config) []string {
	if len(cfg.Data.Subsets) > 0 {
		return cfg.Data.Subsets
	}
	return dataset.Subsets()
}

// run executes the pipeline once: preprocess, export, and — unless offline —
// upload, train, register and batch-transform. Any stage failure is fatal to
// the run.
func run(ctx context.Context, cfg *config.Config, offline bool) error {
	res, paths, err := runLocal(cfg)
	if err != nil {
		return err
	}
	if offline {
		return nil
	}

	if cfg.Storage.Endpoint == "" {
		return fmt.Errorf("storage.endpoint is required for an online run (use -offline to skip)")
	}
	store, err := storage.NewMinIO(cfg.Storage)
	if err != nil {
		return err
	}
	if _, err := storage.Push(ctx, store, cfg.Storage.Prefix, paths); err != nil {
		return err
	}

	if cfg.Platform.Endpoint == "" {
		slog.Info("no platform configured, stopping after upload")
		return nil
	}
	client, err := mlplatform.New(cfg.Platform)
	if err != nil {
		return err
	}
	return runPlatform(ctx, cfg, client, store, res)
}

// runLocal performs the in-process stages: preprocessing and CSV export.
func runLocal(cfg *config.Config) (*preprocess.Result, []string, error) {
	res, err := preprocess.Run(cfg.Data.SourceDir, cfg.Data.Subsets)
	if err != nil {
		return nil, nil, err
	}
	paths, err := export.WriteAll(cfg.Data.OutputDir, res)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("export complete", "files", len(paths), "dir", cfg.Data.OutputDir)
	return res, paths, nil
}

// runPlatform drives the managed services: training job, model registry
// upsert, and one batch-transform per subset with predictions read back from
// storage.
func runPlatform(ctx context.Context, cfg *config.Config, client *mlplatform.Client, store storage.Uploader, res *preprocess.Result) error {
	inputLocation := fmt.Sprintf("s3://%s/%s", cfg.Storage.Bucket, cfg.Storage.Prefix)

	job, err := client.SubmitTraining(ctx, mlplatform.TrainingSpec{
		JobName:       cfg.Platform.Training.JobName,
		EntryPoint:    cfg.Platform.Training.EntryPoint,
		InputLocation: inputLocation,
		Hyperparameters: mlplatform.Hyperparameters{
			Datasets:  len(res.Subsets),
			Epochs:    cfg.Platform.Training.Epochs,
			Optimizer: cfg.Platform.Training.Optimizer,
			BatchSize: cfg.Platform.Training.BatchSize,
			GPUCount:  cfg.Platform.Training.GPUCount,
		},
	})
	if err != nil {
		return err
	}

	job, err = client.WaitTraining(ctx, job.Name, cfg.Platform.PollInterval)
	if err != nil {
		return err
	}

	if err := client.UpsertModel(ctx, cfg.Platform.ModelName, job.ModelArtifact); err != nil {
		return err
	}

	for _, name := range res.Subsets {
		if err := transformSubset(ctx, cfg, client, store, name); err != nil {
			return err
		}
	}
	return nil
}

// transformSubset runs batch inference over one subset's test table and logs
// a summary of the returned predictions.
func transformSubset(ctx context.Context, cfg *config.Config, client *mlplatform.Client, store storage.Uploader, name string) error {
	outputKey := path.Join(cfg.Storage.Prefix, "predictions_"+name+".csv")

	tj, err := client.SubmitTransform(ctx, mlplatform.TransformSpec{
		JobName:   cfg.Platform.Training.JobName + "-transform-" + name,
		ModelName: cfg.Platform.ModelName,
		InputKey:  path.Join(cfg.Storage.Prefix, "test_"+name+".csv"),
		OutputKey: outputKey,
	})
	if err != nil {
		return err
	}
	tj, err = client.WaitTransform(ctx, tj.Name, cfg.Platform.PollInterval)
	if err != nil {
		return err
	}

	data, err := store.Download(ctx, tj.OutputKey)
	if err != nil {
		return err
	}
	preds, err := mlplatform.ParsePredictions(data)
	if err != nil {
		return err
	}

	var sum float64
	for _, p := range preds {
		sum += p
	}
	mean := 0.0
	if len(preds) > 0 {
		mean = sum / float64(len(preds))
	}
	slog.Info("predictions ready",
		"subset", name, "units", len(preds), "mean_rul", mean)
	return nil
}

// runWatch reprocesses the corpus whenever its files change. Cloud stages
// are not re-run in watch mode — it exists for local iteration on the data.
func runWatch(ctx context.Context, cfg *config.Config) error {
	if _, _, err := runLocal(cfg); err != nil {
		slog.Error("initial preprocessing failed", "err", err)
	}
	return dataset.Watch(ctx, cfg.Data.SourceDir, func() {
		if _, _, err := runLocal(cfg); err != nil {
			slog.Error("reprocessing failed", "err", err)
		}
	})
}
