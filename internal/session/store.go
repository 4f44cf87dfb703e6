// Package session keeps the booking flows of live widget mounts.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-widget/internal/domain/booking"
	"github.com/BruksfildServices01/booking-widget/internal/httperr"
	"github.com/BruksfildServices01/booking-widget/internal/widget"
)

var ErrNotFound = httperr.ErrBusiness(httperr.CodeSessionNotFound)

// Session is one widget mount: its parameters and its own booking flow.
type Session struct {
	ID        string
	Params    widget.Params
	Flow      *booking.Flow
	CreatedAt time.Time

	lastSeen time.Time
}

// Store is an in-memory registry of sessions. Sessions idle for longer
// than the TTL are removed by Sweep or on lookup.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a session. build receives the new session id so the
// flow's submitter can be bound to it.
func (s *Store) Create(params widget.Params, build func(id string) *booking.Flow) *Session {
	id := uuid.NewString()
	now := s.now()

	sess := &Session{
		ID:        id,
		Params:    params,
		Flow:      build(id),
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and marks it as seen.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Sweep removes idle sessions and returns their ids. A session with a
// submission in flight is kept until it settles.
func (s *Store) Sweep() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var removed []string
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	if s.ttl <= 0 || now.Sub(sess.lastSeen) < s.ttl {
		return false
	}
	return !sess.Flow.State().IsLoading
}
