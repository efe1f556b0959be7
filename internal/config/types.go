package config

import "time"

// Config represents the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Loader  LoaderConfig  `yaml:"loader"`
	Server  ServerConfig  `yaml:"server"`
	Metrics MetricsConfig `yaml:"metrics"`
	Misses  MissesConfig  `yaml:"misses"`
	Notify  NotifyConfig  `yaml:"notify"`
	Logging LoggingConfig `yaml:"logging"`
}

// ContentConfig describes where documents live and which languages exist.
type ContentConfig struct {
	Root            string   `yaml:"root"`
	Languages       []string `yaml:"languages"`
	DefaultLanguage string   `yaml:"default_language"`
}

// LoaderType selects the FileLoader implementation.
type LoaderType string

const (
	LoaderFS   LoaderType = "fs"
	LoaderHTTP LoaderType = "http"
	LoaderS3   LoaderType = "s3"
)

// LoaderConfig configures document fetching.
type LoaderConfig struct {
	Type LoaderType `yaml:"type"`
	// Dir is the base directory for the fs loader; content roots are resolved below it.
	Dir   string           `yaml:"dir"`
	Watch bool             `yaml:"watch"`
	HTTP  HTTPLoaderConfig `yaml:"http"`
	S3    S3LoaderConfig   `yaml:"s3"`
	Retry RetryConfig      `yaml:"retry"`
}

// RetryBackoffMode selects how retry delays grow.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// RetryConfig controls retries of transient (transport) load failures.
// A negative MaxRetries disables retrying.
type RetryConfig struct {
	Mode       RetryBackoffMode `yaml:"mode"`
	Initial    time.Duration    `yaml:"initial"`
	Max        time.Duration    `yaml:"max"`
	MaxRetries int              `yaml:"max_retries"`
}

// HTTPLoaderConfig configures the HTTP loader.
type HTTPLoaderConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// S3LoaderConfig configures the S3 loader.
type S3LoaderConfig struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Endpoint       string `yaml:"endpoint,omitempty"`
	AccessKeyID    string `yaml:"access_key_id,omitempty"`
	SecretKey      string `yaml:"secret_key,omitempty"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxDepth     int    `yaml:"max_depth"`
	NotFoundPath string `yaml:"not_found_path"`
	Title        string `yaml:"title"`
}

// MetricsConfig toggles Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// MissesConfig configures the SQLite miss log. An empty DBPath disables it.
type MissesConfig struct {
	DBPath     string        `yaml:"db_path"`
	Retention  time.Duration `yaml:"retention"`
	PruneEvery time.Duration `yaml:"prune_every"`
}

// NotifyConfig configures NATS miss events. An empty NATSURL disables them.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}
