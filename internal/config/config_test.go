package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"ENV", "SERVER_PORT", "WINDOW_DAYS", "SLOT_MINUTES", "OPEN_TIME", "CLOSE_TIME",
		"SESSION_TTL", "SUBMIT_TIMEOUT", "AVAILABILITY_POLICY", "AVAILABILITY_RATIO", "WIDGET_API_KEYS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, "09:00", cfg.OpenTime)
	assert.Equal(t, "19:00", cfg.CloseTime)
	assert.Equal(t, 45*time.Minute, cfg.SlotDuration())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "random", cfg.AvailabilityPolicy)
	assert.InDelta(t, 0.7, cfg.AvailabilityRatio, 1e-9)
	assert.Empty(t, cfg.WidgetAPIKeys)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WINDOW_DAYS", "14")
	t.Setenv("SLOT_MINUTES", "30")
	t.Setenv("SUBMIT_TIMEOUT", "3s")
	t.Setenv("AVAILABILITY_POLICY", "Booked")
	t.Setenv("AVAILABILITY_SEED", "42")
	t.Setenv("WIDGET_API_KEYS", "pk_one, pk_two,,")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 14, cfg.WindowDays)
	assert.Equal(t, 30*time.Minute, cfg.SlotDuration())
	assert.Equal(t, 3*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "booked", cfg.AvailabilityPolicy)
	assert.Equal(t, uint64(42), cfg.AvailabilitySeed)
	assert.Equal(t, []string{"pk_one", "pk_two"}, cfg.WidgetAPIKeys)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("WINDOW_DAYS", "many")
	t.Setenv("SESSION_TTL", "forever")

	cfg := Load()

	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}
