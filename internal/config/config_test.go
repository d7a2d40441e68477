package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Tuesday", cfg.Clinic.ClosedDay)
	assert.Len(t, cfg.Clinic.TimeSlots, 11)
	assert.Equal(t, []string{"7499537267", "9284338406"}, cfg.Clinic.NotifyNumbers)
	assert.Equal(t, "admin@romasdentalcare.com", cfg.Admin.Email)
	assert.Equal(t, 12*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, "bookings.events", cfg.Redis.Channel)
	assert.False(t, cfg.SMTP.Enabled())

	day, err := cfg.Clinic.ClosedWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, day)

	loc, err := cfg.Clinic.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 9090
clinic:
  closed_day: monday
  time_slots: ["09:00 AM", "10:00 AM"]
admin:
  session_ttl: 30m
storage:
  bucket: from-file
`)
	t.Setenv("ADMIN_PASSWORD", "letmein")
	t.Setenv("AWS_S3_BUCKET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"09:00 AM", "10:00 AM"}, cfg.Clinic.TimeSlots)
	assert.Equal(t, 30*time.Minute, cfg.Admin.SessionTTL)
	assert.Equal(t, "letmein", cfg.Admin.Password)
	assert.Equal(t, "from-env", cfg.Storage.Bucket)

	day, err := cfg.Clinic.ClosedWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)
}

func TestLoadConfigRejectsBadClosedDay(t *testing.T) {
	dir := writeConfig(t, "clinic:\n  closed_day: someday\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "invalid weekday")
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	dir := writeConfig(t, "clinic:\n  timezone: Mars/Olympus\n")

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "clinic.timezone")
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" SUNDAY ")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
