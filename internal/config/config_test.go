package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	require.NoError(t, err)

	require.Equal(t, DefaultContentRoot, cfg.Content.Root)
	require.Equal(t, []string{"en"}, cfg.Content.Languages)
	require.Equal(t, "en", cfg.Content.DefaultLanguage)
	require.Equal(t, LoaderFS, cfg.Loader.Type)
	require.Equal(t, DefaultHTTPTimeout, cfg.Loader.HTTP.Timeout)
	require.Equal(t, DefaultMaxDepth, cfg.Server.MaxDepth)
	require.Equal(t, DefaultNotFoundPath, cfg.Server.NotFoundPath)
	require.Equal(t, DefaultMetricsPath, cfg.Metrics.Path)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, RetryBackoffExponential, cfg.Loader.Retry.Mode)
	require.Equal(t, DefaultRetryMaxRetries, cfg.Loader.Retry.MaxRetries)
}

func TestParse_DefaultLanguageFromList(t *testing.T) {
	cfg, err := Parse([]byte("content:\n  languages: [de, en]\n"))
	require.NoError(t, err)
	require.Equal(t, "de", cfg.Content.DefaultLanguage)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("DOCRESOLVE_TEST_BUCKET", "handbook")

	cfg, err := Parse([]byte("loader:\n  type: s3\n  s3:\n    bucket: ${DOCRESOLVE_TEST_BUCKET}\n    region: eu-west-1\n"))
	require.NoError(t, err)
	require.Equal(t, "handbook", cfg.Loader.S3.Bucket)
}

func TestParse_Durations(t *testing.T) {
	cfg, err := Parse([]byte("loader:\n  http:\n    timeout: 3s\nmisses:\n  retention: 48h\n"))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.Loader.HTTP.Timeout)
	require.Equal(t, 48*time.Hour, cfg.Misses.Retention)
}

func TestParse_RetryDisabledStaysNegative(t *testing.T) {
	cfg, err := Parse([]byte("loader:\n  retry:\n    max_retries: -1\n    initial: 10ms\n"))
	require.NoError(t, err)
	require.Equal(t, -1, cfg.Loader.Retry.MaxRetries)
	require.Equal(t, 10*time.Millisecond, cfg.Loader.Retry.Initial)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown loader", "loader:\n  type: ftp\n"},
		{"http without base url", "loader:\n  type: http\n"},
		{"s3 without bucket", "loader:\n  type: s3\n"},
		{"default language not listed", "content:\n  languages: [en]\n  default_language: fr\n"},
		{"relative not found path", "server:\n  not_found_path: missing\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryConfig))
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docresolve.yaml")
	t.Setenv("NATS_URL", "")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "must refuse to overwrite without force")
	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, []string{"en", "de"}, cfg.Content.Languages)
	require.True(t, cfg.Metrics.Enabled)
}

func TestNormalizeLogLevel(t *testing.T) {
	require.Equal(t, LogLevelDebug, NormalizeLogLevel(" DEBUG "))
	require.Equal(t, LogLevelWarn, NormalizeLogLevel("warning"))
	require.Equal(t, LogLevelInfo, NormalizeLogLevel("chatty"))
}
