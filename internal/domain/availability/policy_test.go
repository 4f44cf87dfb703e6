package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRandomPolicy_Reproducible(t *testing.T) {
	a, err := GenerateAvailability(monday, 30, DefaultSchedule(), NewRandomPolicy(42, DefaultAvailableRatio))
	require.NoError(t, err)
	b, err := GenerateAvailability(monday, 30, DefaultSchedule(), NewRandomPolicy(42, DefaultAvailableRatio))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRandomPolicy_Ratio(t *testing.T) {
	days, err := GenerateAvailability(monday, 365, DefaultSchedule(), NewRandomPolicy(1, DefaultAvailableRatio))
	require.NoError(t, err)

	open, total := 0, 0
	for _, d := range days {
		for _, s := range d.TimeSlots {
			total++
			if s.Available {
				open++
			}
		}
	}

	require.NotZero(t, total)
	assert.InDelta(t, DefaultAvailableRatio, float64(open)/float64(total), 0.04)
}

func TestRandomPolicy_SameSlotSameAnswer(t *testing.T) {
	policy := NewRandomPolicy(9, DefaultAvailableRatio)

	first, err := GenerateAvailability(monday, 30, DefaultSchedule(), policy)
	require.NoError(t, err)
	second, err := GenerateAvailability(monday, 30, DefaultSchedule(), policy)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A later window agrees with the earlier one on the days they share.
	shifted, err := GenerateAvailability(monday.AddDate(0, 0, 7), 30, DefaultSchedule(), policy)
	require.NoError(t, err)
	assert.Equal(t, first[7:], shifted[:23])
}

func TestRandomPolicy_SeedMatters(t *testing.T) {
	a, err := GenerateAvailability(monday, 30, DefaultSchedule(), NewRandomPolicy(1, DefaultAvailableRatio))
	require.NoError(t, err)
	b, err := GenerateAvailability(monday, 30, DefaultSchedule(), NewRandomPolicy(2, DefaultAvailableRatio))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestRandomPolicy_Extremes(t *testing.T) {
	all := NewRandomPolicy(3, 1)
	none := NewRandomPolicy(3, 0)

	for _, hhmm := range []string{"09:00", "09:45", "12:00", "18:00"} {
		ok, _ := all(monday, hhmm)
		assert.True(t, ok)
		ok, _ = none(monday, hhmm)
		assert.False(t, ok)
	}
}

func TestExcludeBooked(t *testing.T) {
	policy := ExcludeBooked([]string{"2026-10-19-09:45"}, AlwaysAvailable)

	slots, err := GenerateTimeSlots(monday, DefaultSchedule(), policy)
	require.NoError(t, err)

	for _, s := range slots {
		assert.Equal(t, s.ID != "2026-10-19-09:45", s.Available, s.ID)
	}
}

func TestExcludeBooked_NilNext(t *testing.T) {
	policy := ExcludeBooked(nil, nil)

	_, err := policy(monday, "09:00")
	assert.ErrorIs(t, err, ErrNilPolicy)
}

func TestFindDayAndSlot(t *testing.T) {
	days, err := GenerateAvailability(monday, 3, DefaultSchedule(), AlwaysAvailable)
	require.NoError(t, err)

	day, ok := FindDay(days, time.Date(2026, time.October, 20, 18, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "2026-10-20", day.Date.Format(DateLayout))

	slot, ok := FindSlot(day, "2026-10-20-10:30")
	require.True(t, ok)
	assert.Equal(t, "10:30", slot.Time)

	_, ok = FindSlot(day, "2026-10-19-10:30")
	assert.False(t, ok)

	_, ok = FindDay(days, monday.AddDate(0, 0, 10))
	assert.False(t, ok)

	_, ok = FindSlot(nil, "x")
	assert.False(t, ok)
}
