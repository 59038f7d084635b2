package studio

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/contentflow/internal/logger"
)

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// Sessions maps browser session ids to controllers. It lives in process
// memory only.
type Sessions struct {
	fetcher IdeaFetcher
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewSessions creates an empty session store whose controllers share fetcher.
func NewSessions(fetcher IdeaFetcher) *Sessions {
	return &Sessions{
		fetcher:  fetcher,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Get returns the controller for id and marks the session as seen.
func (s *Sessions) Get(id string) (*Controller, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.controller, true
}

// Create starts a new session and returns its id.
func (s *Sessions) Create() (string, *Controller) {
	id := uuid.New().String()
	ctrl := NewController(s.fetcher)

	s.mu.Lock()
	s.sessions[id] = &session{controller: ctrl, lastSeen: s.now()}
	s.mu.Unlock()

	return id, ctrl
}

// GetOrCreate returns the controller for id, creating a new session when id
// is unknown. created reports whether a new id was issued.
func (s *Sessions) GetOrCreate(id string) (string, *Controller, bool) {
	if ctrl, ok := s.Get(id); ok {
		return id, ctrl, false
	}
	newID, ctrl := s.Create()
	return newID, ctrl, true
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than maxIdle. Sessions with a
// request in flight are kept.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) || sess.controller.Loading() {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Sweep(maxIdle); removed > 0 {
				logger.With(logger.Fields{logger.FieldComponent: "sessions"}).
					WithCount(removed).
					Info(ctx, "Swept idle sessions, %d remaining", s.Len())
			}
		}
	}
}
