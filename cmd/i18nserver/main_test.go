package main

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/s3fetch"
)

func parseConfig(t *testing.T, vars map[string]string) config {
	t.Helper()
	var cfg config
	require.NoError(t, env.ParseWithOptions(&cfg, env.Options{Environment: vars}))
	return cfg
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := parseConfig(t, map[string]string{})
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "en_US", cfg.FallbackLang)
	assert.Equal(t, map[string]string{"en_US": "en_US.json", "zh_Hans": "zh_Hans.yaml"}, cfg.Langs)
	assert.True(t, cfg.MetaTranslated)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfigOverrides(t *testing.T) {
	t.Parallel()

	cfg := parseConfig(t, map[string]string{
		"LANGS":         "fr_FR:fr.json",
		"FALLBACK_LANG": "fr_FR",
		"S3_BUCKET":     "assets",
		"S3_PATH_STYLE": "true",
		"LOG_LEVEL":     "debug",
		"SENTRY_DSN":    "https://key@sentry.example/1",
	})
	assert.Equal(t, map[string]string{"fr_FR": "fr.json"}, cfg.Langs)
	assert.Equal(t, "assets", cfg.S3.Bucket)
	assert.True(t, cfg.S3.PathStyle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://key@sentry.example/1", cfg.Log.Sentry.DSN)
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	t.Run("directory by default", func(t *testing.T) {
		t.Parallel()
		f, source, err := newFetcher(config{LocalesDir: "../../web/locales"})
		require.NoError(t, err)
		assert.IsType(t, &i18n.FSFetcher{}, f)
		assert.Equal(t, "../../web/locales", source)
	})

	t.Run("http when a base url is set", func(t *testing.T) {
		t.Parallel()
		f, source, err := newFetcher(config{LocalesBaseURL: "https://cdn.example/locales/"})
		require.NoError(t, err)
		assert.IsType(t, &i18n.HTTPFetcher{}, f)
		assert.Equal(t, "https://cdn.example/locales/", source)
	})

	t.Run("s3 when a bucket is set", func(t *testing.T) {
		t.Parallel()
		f, source, err := newFetcher(config{S3: s3fetch.Config{Bucket: "assets", AccessKey: "k", SecretKey: "s", Prefix: "i18n"}})
		require.NoError(t, err)
		assert.IsType(t, &s3fetch.Fetcher{}, f)
		assert.Equal(t, "s3://assets/i18n", source)
	})

	t.Run("s3 without credentials fails", func(t *testing.T) {
		t.Parallel()
		_, _, err := newFetcher(config{S3: s3fetch.Config{Bucket: "assets"}})
		require.ErrorIs(t, err, s3fetch.ErrInvalidConfig)
	})
}
