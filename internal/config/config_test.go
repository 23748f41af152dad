package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "clinic"
password = "secret"
dbname = "clinic"
auto_migrate = true

[storage]
driver = "memory"

[redis]
enabled = false
lock_ttl = "3s"

[logs]
level = "debug"

[metrics]
enabled = true

[scheduling]
timezone = "Europe/Moscow"
min_booking_notice_minutes = 60
advance_booking_days = 30
completion_interval = 120
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 3*time.Second, cfg.Redis.LockTTL.Duration)
	assert.Equal(t, 2*time.Minute, cfg.Scheduling.CompletionInterval.Duration)
	assert.Equal(t, 60, cfg.Scheduling.MinBookingNoticeMinutes)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "host=db port=5433 user=clinic password=secret dbname=clinic sslmode=disable", cfg.Database.DSN())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("LOCK_TTL", "10")
	t.Setenv("COMPLETION_INTERVAL", "45s")
	t.Setenv("REDIS_URL", "redis://user:pw@cache:6380")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Redis.LockTTL.Duration)
	assert.Equal(t, 45*time.Second, cfg.Scheduling.CompletionInterval.Duration)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "user", cfg.Redis.Username)
	assert.Equal(t, "pw", cfg.Redis.Password)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[storage]\ndriver = \"mongo\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "[scheduling]\ntimezone = \"Mars/Olympus\"\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	t.Setenv("HTTP_PORT", "eighty")
	_, err = Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
