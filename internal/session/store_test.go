package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-widget/internal/domain/availability"
	"github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/httperr"
	"github.com/BruksfildServices01/booking-widget/internal/widget"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = c.now
	return s, c
}

func emptyFlow(string) *booking.Flow {
	return booking.New(nil, nil)
}

func TestStore_CreateGetDelete(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	var boundID string
	sess := s.Create(widget.Params{Theme: "dark", Lang: "en"}, func(id string) *booking.Flow {
		boundID = id
		return booking.New(nil, nil)
	})

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, sess.ID, boundID)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	assert.True(t, s.Delete(sess.ID))
	assert.False(t, s.Delete(sess.ID))

	_, err = s.Get(sess.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSessionNotFound))
}

func TestStore_SessionsAreIndependent(t *testing.T) {
	s, _ := newTestStore(time.Hour)

	a := s.Create(widget.Params{}, emptyFlow)
	b := s.Create(widget.Params{}, emptyFlow)

	a.Flow.GoToNextStep()

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, booking.StepDetails, a.Flow.State().Step)
	assert.Equal(t, booking.StepSelectDateTime, b.Flow.State().Step)
}

func TestStore_ExpiresOnLookup(t *testing.T) {
	s, c := newTestStore(time.Hour)
	sess := s.Create(widget.Params{}, emptyFlow)

	c.t = c.t.Add(30 * time.Minute)
	_, err := s.Get(sess.ID)
	require.NoError(t, err)

	c.t = c.t.Add(59 * time.Minute)
	_, err = s.Get(sess.ID)
	require.NoError(t, err, "lookup refreshes the idle timer")

	c.t = c.t.Add(time.Hour)
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	s, c := newTestStore(time.Hour)
	old := s.Create(widget.Params{}, emptyFlow)

	c.t = c.t.Add(45 * time.Minute)
	fresh := s.Create(widget.Params{}, emptyFlow)

	c.t = c.t.Add(20 * time.Minute)
	removed := s.Sweep()

	assert.Equal(t, []string{old.ID}, removed)
	_, err := s.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_SweepKeepsLoadingFlows(t *testing.T) {
	s, c := newTestStore(time.Minute)

	day := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	days, err := availability.GenerateAvailability(day, 1, availability.DefaultSchedule(), availability.AlwaysAvailable)
	require.NoError(t, err)

	release := make(chan struct{})
	submitter := booking.SubmitterFunc(func(ctx context.Context, rec booking.Record) (*booking.Receipt, error) {
		<-release
		return &booking.Receipt{Reference: rec.Reference}, nil
	})

	sess := s.Create(widget.Params{}, func(string) *booking.Flow {
		return booking.New(days, submitter)
	})
	slot := days[0].TimeSlots[0].ID
	require.NoError(t, sess.Flow.SetSelectedDate(&day))
	require.NoError(t, sess.Flow.SetSelectedTimeSlot(&slot))

	done, err := sess.Flow.StartComplete(context.Background())
	require.NoError(t, err)

	c.t = c.t.Add(time.Hour)
	assert.Empty(t, s.Sweep())

	close(release)
	<-done
	assert.Equal(t, []string{sess.ID}, s.Sweep())
}

func TestStore_NoTTL(t *testing.T) {
	s, c := newTestStore(0)
	sess := s.Create(widget.Params{}, emptyFlow)

	c.t = c.t.Add(1000 * time.Hour)
	assert.Empty(t, s.Sweep())
	_, err := s.Get(sess.ID)
	assert.NoError(t, err)
}
