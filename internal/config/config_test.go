package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `
[database]
host = "db"
user = "booking"
password = "from-file"
dbname = "spaces"

[booking]
max_tx_retries = 5

[kafka]
enabled = true
brokers = ["k1:9092"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsAndFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5, cfg.Booking.MaxTxRetries)
	assert.Equal(t, 7, cfg.Booking.OverviewDays)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DriverPostgres, cfg.Calendar.Driver)
	assert.Equal(t, "booking.events", cfg.Kafka.Topic)
	assert.Equal(t, "payment.succeeded", cfg.RabbitMQ.RoutingKey)
	assert.Equal(t, "host=db port=5432 user=booking password=from-file dbname=spaces sslmode=disable", cfg.Database.DSN())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("BOOKING_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKING_BOOKING_MAX_TX_RETRIES", "1")
	t.Setenv("BOOKING_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(writeConfig(t, baseConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 1, cfg.Booking.MaxTxRetries)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := writeConfig(t, baseConfig)
	envPath := filepath.Join(filepath.Dir(path), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("BOOKING_DATABASE_USER=dotenv-user\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("BOOKING_DATABASE_USER") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dotenv-user", cfg.Database.User)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown storage driver", content: "[database]\nhost=\"db\"\n[storage]\ndriver=\"redis\""},
		{name: "mongo calendar without uri", content: "[database]\nhost=\"db\"\n[calendar]\ndriver=\"mongo\""},
		{name: "http spaces without url", content: "[database]\nhost=\"db\"\n[spaces]\nsource=\"http\""},
		{name: "postgres without host", content: "[logs]\nlevel=\"info\""},
		{name: "kafka without brokers", content: "[database]\nhost=\"db\"\n[kafka]\nenabled=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}
