package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "frida", cfg.Pets.DefaultID)
	assert.Equal(t, "Frida", cfg.Pets.DefaultName)
	assert.Equal(t, "memory", cfg.StoreKind())
	assert.Equal(t, DefaultRatePerMin, cfg.RatePerMinute())
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)

	ac, err := cfg.AlertsConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeZone, ac.Location.String())
	assert.Equal(t, 22, ac.NightStartHour)
	assert.Equal(t, 6, ac.NightEndHour)
	assert.Equal(t, 10*time.Minute, ac.BurstWindow)
	assert.Equal(t, 4, ac.BurstThreshold)
	assert.Equal(t, 2.0, ac.DistanceThresholdKm)
}

func TestLoad_EnvOverrides(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{
		"PORT":                  "9000",
		"DB_PATH":               "/tmp/scans.db",
		"DEFAULT_PET_ID":        "  Toby ",
		"ALERT_TZ":              "UTC",
		"NIGHT_START_HOUR":      "0",
		"NIGHT_END_HOUR":        "5",
		"BURST_WINDOW_MINUTES":  "15",
		"BURST_THRESHOLD":       "6",
		"DISTANCE_THRESHOLD_KM": "0.5",
		"RATE_LIMIT_PER_MINUTE": "0",
		"PET_ALIASES":           "Rocky=frida, viejo = toby",
		"NOTIFY_TIMEOUT":        "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "sqlite", cfg.StoreKind())
	assert.Equal(t, "toby", cfg.Pets.DefaultID)
	assert.Equal(t, 0, cfg.RatePerMinute())
	assert.Equal(t, map[string]string{"rocky": "frida", "viejo": "toby"}, cfg.Pets.Aliases)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)

	ac, err := cfg.AlertsConfig()
	require.NoError(t, err)
	assert.Equal(t, 0, ac.NightStartHour)
	assert.Equal(t, 5, ac.NightEndHour)
	assert.Equal(t, 15*time.Minute, ac.BurstWindow)
	assert.Equal(t, 6, ac.BurstThreshold)
	assert.Equal(t, 0.5, ac.DistanceThresholdKm)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7000"
  base_url: https://tag.example.org/
alerts:
  time_zone: UTC
  burst_window: 20m
notify:
  webhook_url: https://hooks.example.org/x
  queue_size: 16
pets:
  aliases:
    rocky: frida
`), 0o600))

	cfg, err := LoadWith(envMap(map[string]string{
		"CONFIG_FILE": path,
		"PORT":        "7001",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.Addr(), "env wins over file")
	assert.Equal(t, "https://tag.example.org", cfg.Server.BaseURL)
	assert.Equal(t, 16, cfg.Notify.QueueSize)
	assert.Equal(t, "frida", cfg.Pets.Aliases["rocky"])

	ac, err := cfg.AlertsConfig()
	require.NoError(t, err)
	assert.Equal(t, 20*time.Minute, ac.BurstWindow)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad tz":       {"ALERT_TZ": "Mars/Olympus"},
		"bad hour":     {"NIGHT_START_HOUR": "25"},
		"bad number":   {"BURST_THRESHOLD": "many"},
		"bad webhook":  {"NOTIFY_WEBHOOK_URL": "not a url"},
		"bad pet id":   {"DEFAULT_PET_ID": "fri da"},
		"bad port":     {"PORT": "http"},
		"bad aliases":  {"PET_ALIASES": "rocky"},
		"missing file": {"CONFIG_FILE": "/nonexistent/config.yaml"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(envMap(env))
			assert.Error(t, err)
		})
	}
}
