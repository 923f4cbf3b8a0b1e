package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendahub/AGH-BookingService/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "agendahub"
password = "secret"
dbname = "agendahub_booking"

[reminders]
enabled = true
frequency = "daily"
send_time = "08:30"
lead_hours = 24
`

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "agendahub_booking", cfg.Database.DBName)
	assert.Equal(t, "08:30", cfg.Reminders.SendTime)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "agendahub_booking"
`))
	require.NoError(t, err)

	// Незаполненные секции получают значения по умолчанию
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Booking.ServiceWindowFallback)
	assert.Equal(t, "confirmed", cfg.Booking.DefaultStatus)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
[server]
http_port = 99999

[database]
host = "localhost"
dbname = "agendahub_booking"
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_MissingDatabase(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
[database]
host = "localhost"
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_InvalidReminders(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "agendahub_booking"

[reminders]
enabled = true
frequency = "hourly"
send_time = "09:00"
lead_hours = 24
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = config.Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "agendahub_booking"

[reminders]
enabled = true
frequency = "daily"
send_time = "25:61"
lead_hours = 24
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoad_InvalidDefaultStatus(t *testing.T) {
	_, err := config.Load(writeConfig(t, `
[database]
host = "localhost"
dbname = "agendahub_booking"

[booking]
default_status = "draft"
`))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	dsn := cfg.Database.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=agendahub_booking")
	assert.Contains(t, dsn, "sslmode=disable")
}
