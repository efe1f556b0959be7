package config

import "time"

// Default values applied after unmarshal.
const (
	DefaultContentRoot     = "assets/docs"
	DefaultLanguage        = "en"
	DefaultLoaderDir       = "."
	DefaultHTTPTimeout     = 10 * time.Second
	DefaultRetryInitial    = 100 * time.Millisecond
	DefaultRetryMax        = 2 * time.Second
	DefaultRetryMaxRetries = 2
	DefaultAddr            = ":8080"
	DefaultMaxDepth        = 6
	DefaultNotFoundPath    = "/not-found"
	DefaultMetricsPath     = "/metrics"
	DefaultMissRetention   = 30 * 24 * time.Hour
	DefaultMissPruneEvery  = time.Hour
	DefaultNotifySubject   = "docresolve.misses"
	DefaultSiteTitle       = "Documentation"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config)
	Domain() string
}

type contentDefaults struct{}

func (contentDefaults) Domain() string { return "content" }

func (contentDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Content.Root == "" {
		cfg.Content.Root = DefaultContentRoot
	}
	if cfg.Content.DefaultLanguage == "" {
		if len(cfg.Content.Languages) > 0 {
			cfg.Content.DefaultLanguage = cfg.Content.Languages[0]
		} else {
			cfg.Content.DefaultLanguage = DefaultLanguage
		}
	}
	if len(cfg.Content.Languages) == 0 {
		cfg.Content.Languages = []string{cfg.Content.DefaultLanguage}
	}
}

type loaderDefaults struct{}

func (loaderDefaults) Domain() string { return "loader" }

func (loaderDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Loader.Type == "" {
		cfg.Loader.Type = LoaderFS
	}
	if cfg.Loader.Dir == "" {
		cfg.Loader.Dir = DefaultLoaderDir
	}
	if cfg.Loader.HTTP.Timeout <= 0 {
		cfg.Loader.HTTP.Timeout = DefaultHTTPTimeout
	}
	r := &cfg.Loader.Retry
	if r.Mode == "" {
		r.Mode = RetryBackoffExponential
	}
	if r.Initial <= 0 {
		r.Initial = DefaultRetryInitial
	}
	if r.Max <= 0 {
		r.Max = DefaultRetryMax
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = DefaultRetryMaxRetries
	}
}

type serverDefaults struct{}

func (serverDefaults) Domain() string { return "server" }

func (serverDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.MaxDepth <= 0 {
		cfg.Server.MaxDepth = DefaultMaxDepth
	}
	if cfg.Server.NotFoundPath == "" {
		cfg.Server.NotFoundPath = DefaultNotFoundPath
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = DefaultSiteTitle
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}

type observabilityDefaults struct{}

func (observabilityDefaults) Domain() string { return "observability" }

func (observabilityDefaults) ApplyDefaults(cfg *Config) {
	if cfg.Misses.Retention <= 0 {
		cfg.Misses.Retention = DefaultMissRetention
	}
	if cfg.Misses.PruneEvery <= 0 {
		cfg.Misses.PruneEvery = DefaultMissPruneEvery
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{contentDefaults{}, loaderDefaults{}, serverDefaults{}, observabilityDefaults{}}
}

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) {
	for _, a := range defaultAppliers() {
		a.ApplyDefaults(cfg)
	}
}

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
