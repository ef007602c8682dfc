package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rulprep/rulprep/internal/dataset"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOutputDir    = "out"
	DefaultPrefix       = "cmapss"
	DefaultPollInterval = 15 * time.Second
	DefaultEpochs       = 30
	DefaultBatchSize    = 256
	DefaultOptimizer    = "adam"
	DefaultGPUCount     = 1
)

// Config is the top-level pipeline configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Storage  StorageConfig  `yaml:"storage"`
	Platform PlatformConfig `yaml:"platform"`
}

// DataConfig locates the raw corpus and the local output directory.
type DataConfig struct {
	// SourceDir is the directory holding the raw subset triples.
	SourceDir string `yaml:"source_dir"`

	// OutputDir is where model-ready CSV tables are written.
	OutputDir string `yaml:"output_dir"`

	// Subsets restricts the run to the named subsets. Empty means all four.
	Subsets []string `yaml:"subsets"`
}

// StorageConfig addresses the S3-compatible object store the tables are
// handed off to. Credentials are resolved from the named environment
// variables.
type StorageConfig struct {
	// Endpoint is the host:port of the object store.
	Endpoint string `yaml:"endpoint"`

	// Bucket and Prefix form the upload address bucket/prefix/<file>.
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	// Secure enables TLS on the storage connection.
	Secure bool `yaml:"secure"`

	// AccessKeyEnv and SecretKeyEnv name the environment variables holding
	// the static credentials.
	AccessKeyEnv string `yaml:"access_key_env"`
	SecretKeyEnv string `yaml:"secret_key_env"`
}

// AccessKey returns the access key resolved from the environment.
func (s StorageConfig) AccessKey() string {
	if s.AccessKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.AccessKeyEnv)
}

// SecretKey returns the secret key resolved from the environment.
func (s StorageConfig) SecretKey() string {
	if s.SecretKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.SecretKeyEnv)
}

// PlatformConfig addresses the managed ML platform used for training and
// batch inference.
type PlatformConfig struct {
	// Endpoint is the base URL of the platform API.
	Endpoint string `yaml:"endpoint"`

	// ModelName is the registry name the trained artifact is published
	// under. Publishing is an upsert: overwrite-or-create.
	ModelName string `yaml:"model_name"`

	// Auth configures how the client authenticates to the platform.
	Auth AuthConfig `yaml:"auth"`

	// PollInterval controls how often job status is polled.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Training holds the managed training job parameters.
	Training TrainingConfig `yaml:"training"`
}

// TrainingConfig holds the hyperparameters submitted with a training job.
type TrainingConfig struct {
	// JobName is the base name for submitted jobs.
	JobName string `yaml:"job_name"`

	// EntryPoint is the training script the platform executes.
	EntryPoint string `yaml:"entry_point"`

	Epochs    int    `yaml:"epochs"`
	BatchSize int    `yaml:"batch_size"`
	Optimizer string `yaml:"optimizer"`
	GPUCount  int    `yaml:"gpu_count"`
}

// AuthConfig specifies the authentication mode for the platform API.
type AuthConfig struct {
	// Mode is one of: mtls | apikey | bearer | basic | none.
	Mode string `yaml:"mode"`

	// mTLS fields — used when Mode == "mtls".
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
	CAFile   string `yaml:"ca_file"`

	// API key fields — used when Mode == "apikey".
	// Header is the HTTP header name to send the key in.
	Header string `yaml:"header"`
	// KeyEnv is the name of the environment variable that holds the key value.
	KeyEnv string `yaml:"key_env"`

	// Bearer token fields — used when Mode == "bearer".
	TokenEnv string `yaml:"token_env"`

	// Basic auth fields — used when Mode == "basic".
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// Key returns the API key value resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Token returns the bearer token value resolved from the environment.
func (a AuthConfig) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

// Password returns the basic-auth password resolved from the environment.
func (a AuthConfig) Password() string {
	if a.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(a.PasswordEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Data: DataConfig{
			OutputDir: DefaultOutputDir,
		},
		Storage: StorageConfig{
			Prefix: DefaultPrefix,
		},
		Platform: PlatformConfig{
			PollInterval: DefaultPollInterval,
			Training: TrainingConfig{
				Epochs:    DefaultEpochs,
				BatchSize: DefaultBatchSize,
				Optimizer: DefaultOptimizer,
				GPUCount:  DefaultGPUCount,
			},
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Data.SourceDir == "" {
		return fmt.Errorf("data.source_dir is required")
	}
	if cfg.Data.OutputDir == "" {
		return fmt.Errorf("data.output_dir must not be empty")
	}
	for i, name := range cfg.Data.Subsets {
		if !dataset.ValidSubset(name) {
			return fmt.Errorf("data.subsets[%d]: unknown subset %q", i, name)
		}
	}

	// Storage and platform sections are optional (offline runs), but when an
	// endpoint is configured the rest of the section must be usable.
	if cfg.Storage.Endpoint != "" && cfg.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage.endpoint is set")
	}
	if cfg.Platform.Endpoint != "" {
		if cfg.Platform.ModelName == "" {
			return fmt.Errorf("platform.model_name is required when platform.endpoint is set")
		}
		if cfg.Platform.PollInterval <= 0 {
			return fmt.Errorf("platform.poll_interval must be positive")
		}
		if cfg.Platform.Training.Epochs <= 0 {
			return fmt.Errorf("platform.training.epochs must be positive")
		}
		if cfg.Platform.Training.BatchSize <= 0 {
			return fmt.Errorf("platform.training.batch_size must be positive")
		}
		switch cfg.Platform.Auth.Mode {
		case "mtls", "apikey", "bearer", "basic", "none", "":
		default:
			return fmt.Errorf("platform.auth: unknown mode %q", cfg.Platform.Auth.Mode)
		}
	}
	return nil
}
