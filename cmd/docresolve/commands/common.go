// Package commands implements the docresolve CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docresolve/internal/config"
	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/lang"
	"git.home.luguber.info/inful/docresolve/internal/loader"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
	"git.home.luguber.info/inful/docresolve/internal/retry"
)

// Global is shared state passed to every command.
type Global struct {
	Logger *slog.Logger
	// Out receives command output meant for the user.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docresolve.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve   ServeCmd   `cmd:"" help:"Serve documentation over HTTP"`
	Resolve ResolveCmd `cmd:"" help:"Resolve one document and print it as JSON"`
	Misses  MissesCmd  `cmd:"" help:"List recorded resolution misses"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration and applies its logging section.
func loadConfig(g *Global, root *CLI) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Logging.NewLogger(os.Stderr, root.Verbose)
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, logger, nil
}

// newLoader builds the FileLoader selected by loader.type, wrapped with the
// loader.retry policy.
func newLoader(ctx context.Context, cfg *config.Config) (resolve.FileLoader, error) {
	var base loader.Loader
	switch cfg.Loader.Type {
	case config.LoaderFS:
		base = loader.NewFSLoader(cfg.Loader.Dir)
	case config.LoaderHTTP:
		l, err := loader.NewHTTPLoader(cfg.Loader.HTTP.BaseURL, cfg.Loader.HTTP.Timeout)
		if err != nil {
			return nil, err
		}
		base = l
	case config.LoaderS3:
		s3cfg := cfg.Loader.S3
		l, err := loader.NewS3Loader(ctx, loader.S3Config{
			Bucket:         s3cfg.Bucket,
			Region:         s3cfg.Region,
			AccessKeyID:    s3cfg.AccessKeyID,
			SecretKey:      s3cfg.SecretKey,
			Endpoint:       s3cfg.Endpoint,
			ForcePathStyle: s3cfg.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		base = l
	default:
		return nil, derrors.ConfigInvalid("loader.type", fmt.Sprintf("unsupported loader %q", cfg.Loader.Type))
	}
	return loader.WithRetry(base, retry.FromConfig(cfg.Loader.Retry)), nil
}

func newSelector(cfg *config.Config) *lang.Selector {
	return lang.NewSelector(cfg.Content.Languages, cfg.Content.DefaultLanguage)
}
