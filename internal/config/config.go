// Package config loads the docresolve YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// Load loads configuration from the specified file. ${VAR} references are
// expanded after .env files have been applied to the environment.
func Load(configPath string) (*Config, error) {
	if envPath, err := loadEnvFile(); err == nil {
		slog.Debug("Loaded environment file", "path", envPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to load environment file")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.ConfigNotFound(configPath)
		}
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates raw YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config")
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.New(derrors.CategoryConfig, derrors.SeverityError, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const exampleConfig = `# docresolve configuration
content:
  root: assets/docs
  languages: [en, de]
  default_language: en

loader:
  type: fs            # fs | http | s3
  dir: .
  watch: true
  http:
    base_url: https://example.com
    timeout: 10s
  retry:
    mode: exponential   # fixed | linear | exponential
    initial: 100ms
    max: 2s
    max_retries: 2      # negative disables retries
  s3:
    bucket: docs
    region: eu-central-1

server:
  addr: ":8080"
  max_depth: 6
  not_found_path: /not-found
  title: Documentation

metrics:
  enabled: true
  path: /metrics

misses:
  db_path: ./docresolve-misses.db
  retention: 720h
  prune_every: 1h

notify:
  nats_url: ${NATS_URL}
  subject: docresolve.misses

logging:
  level: info
  format: text
`
