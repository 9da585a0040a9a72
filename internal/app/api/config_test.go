package api

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "POSTGRES_DSN", "SHUTDOWN_TIMEOUT",
	"CONVERSION_REPORTER", "CONVERSION_WORKERS", "CONVERSION_QUEUE_SIZE", "CONVERSION_TIMEOUT",
	"KAMELEOON_SITE_CODE", "KAMELEOON_DATA_API", "KAMELEOON_GOAL_ID",
	"KAMELEOON_CLIENT_ID", "KAMELEOON_CLIENT_SECRET", "KAMELEOON_TOP_LEVEL_DOMAIN",
	"KAMELEOON_INIT_TIMEOUT", "KAMELEOON_REFRESH_INTERVAL",
	"VISITOR_COOKIE_NAME", "VISITOR_COOKIE_DOMAIN", "KAFKA_BROKERS", "KAFKA_CONVERSION_TOPIC",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		// Setenv registers the restore; envconfig treats an empty value as set.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "5001", cfg.Port)
	require.Equal(t, ":5001", cfg.Addr())
	require.True(t, cfg.IsDevelopment())
	require.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	require.Equal(t, ReporterDataAPI, cfg.ConversionReporter)
	require.Equal(t, "dnkd8eslzh", cfg.KameleoonSiteCode)
	require.Equal(t, "https://eu-data.kameleoon.io", cfg.KameleoonDataAPI)
	require.Equal(t, int64(406352), cfg.KameleoonGoalID)
	require.Equal(t, "kameleoonVisitorCode", cfg.VisitorCookieName)
	require.Equal(t, 4, cfg.ConversionWorkers)
	require.Equal(t, 256, cfg.ConversionQueueSize)
	require.Equal(t, 5*time.Second, cfg.ConversionTimeout)
	require.Equal(t, "conversions", cfg.KafkaConversionTopic)
}

func TestLoadConfig_ProductionOrigins(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "Production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.False(t, cfg.IsDevelopment())
	require.Equal(t, []string{"https://shop.gueripep.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CONVERSION_REPORTER", "KAFKA")
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("CONVERSION_TIMEOUT", "750ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, ReporterKafka, cfg.ConversionReporter)
	require.Equal(t, 750*time.Millisecond, cfg.ConversionTimeout)
}

func TestLoadConfig_SDKReporter(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CONVERSION_REPORTER", "sdk")
	t.Setenv("KAMELEOON_CLIENT_ID", "id")
	t.Setenv("KAMELEOON_CLIENT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ReporterSDK, cfg.ConversionReporter)
	require.Equal(t, 10*time.Second, cfg.KameleoonInitTimeout)
	require.Equal(t, time.Minute, cfg.KameleoonRefreshInterval)
}

func TestLoadConfig_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"port":            {"PORT": "http"},
		"reporter":        {"CONVERSION_REPORTER": "carrier-pigeon"},
		"sdk credentials": {"CONVERSION_REPORTER": "sdk", "KAMELEOON_CLIENT_ID": "id"},
		"kafka brokers":   {"CONVERSION_REPORTER": "kafka"},
		"goal":            {"KAMELEOON_GOAL_ID": "0"},
		"workers":         {"CONVERSION_WORKERS": "0"},
		"not a number":    {"CONVERSION_QUEUE_SIZE": "many"},
	} {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
