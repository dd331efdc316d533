package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	require.Equal(t, "3000", c.AppPort)
	require.Equal(t, "sqlite", c.DatabaseDriver)
	require.Equal(t, "banjiha.db", c.SQLitePath)
	require.Equal(t, "익명", c.AnonymousAuthor)
	require.Equal(t, SeedMissing, c.SeedMode)
	require.Equal(t, []string{"*"}, c.AllowedOrigins)
	// Redis stays disabled unless a host is configured.
	require.Empty(t, c.RedisHost)
	require.Equal(t, 6379, c.RedisPort)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("SEED_MODE", SeedOff)
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("REDIS_PORT", "6380")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	require.Equal(t, "9999", c.AppPort)
	require.Equal(t, SeedOff, c.SeedMode)
	require.Equal(t, []string{"http://a.example", "http://b.example"}, c.AllowedOrigins)
	require.Equal(t, 6380, c.RedisPort)
}

func TestSplitAndTrim(t *testing.T) {
	require.Nil(t, splitAndTrim(""))
	require.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}
