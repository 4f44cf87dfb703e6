package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
)

func newTestCache(t *testing.T) (*CalendarRedis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	return NewCalendarRedis(client), mr
}

func sampleDays(t *testing.T) []availability.DayAvailability {
	t.Helper()
	days, err := availability.GenerateAvailability(
		time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		7,
		availability.DefaultSchedule(),
		availability.NewRandomPolicy(5, availability.DefaultAvailableRatio),
	)
	require.NoError(t, err)
	return days
}

func TestCalendarRedis_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	days, ok, err := c.Get(context.Background(), "2026-10-19:7")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, days)
}

func TestCalendarRedis_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	days := sampleDays(t)

	require.NoError(t, c.Set(ctx, "2026-10-19:7", days, time.Hour))
	assert.True(t, mr.Exists("availability:2026-10-19:7"))

	got, ok, err := c.Get(ctx, "2026-10-19:7")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, len(days))

	for i := range days {
		assert.True(t, days[i].Date.Equal(got[i].Date))
		assert.Equal(t, days[i].Available, got[i].Available)
		assert.Equal(t, days[i].TimeSlots, got[i].TimeSlots)
	}
}

func TestCalendarRedis_Expires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", sampleDays(t), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCalendarRedis_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("availability:bad", "{not json"))

	_, _, err := c.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestCalendarRedis_Purge(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", sampleDays(t), 0))
	require.NoError(t, c.Set(ctx, "b", sampleDays(t), 0))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, c.Purge(ctx))

	assert.False(t, mr.Exists("availability:a"))
	assert.False(t, mr.Exists("availability:b"))
	assert.True(t, mr.Exists("unrelated"))
	assert.NoError(t, c.Purge(ctx))
	assert.NoError(t, c.Ping(ctx))
}
