package config

import (
	"net/url"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

// Validate checks cross-field constraints after defaults were applied.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) error{validateContent, validateLoader, validateServer} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateContent(cfg *Config) error {
	for _, l := range cfg.Content.Languages {
		if strings.TrimSpace(l) == "" {
			return derrors.ConfigInvalid("content.languages", "empty language code")
		}
	}
	if !slices.Contains(cfg.Content.Languages, cfg.Content.DefaultLanguage) {
		return derrors.ConfigInvalid("content.default_language", "must be one of content.languages")
	}
	return nil
}

func validateLoader(cfg *Config) error {
	switch cfg.Loader.Type {
	case LoaderFS:
		return nil
	case LoaderHTTP:
		u, err := url.Parse(cfg.Loader.HTTP.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return derrors.ConfigInvalid("loader.http.base_url", "absolute URL required")
		}
		return nil
	case LoaderS3:
		if cfg.Loader.S3.Bucket == "" || cfg.Loader.S3.Region == "" {
			return derrors.ConfigInvalid("loader.s3", "bucket and region are required")
		}
		return nil
	default:
		return derrors.ConfigInvalid("loader.type", "unknown loader type "+string(cfg.Loader.Type))
	}
}

func validateServer(cfg *Config) error {
	if !strings.HasPrefix(cfg.Server.NotFoundPath, "/") {
		return derrors.ConfigInvalid("server.not_found_path", "must start with /")
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return derrors.ConfigInvalid("metrics.path", "must start with /")
	}
	return nil
}
