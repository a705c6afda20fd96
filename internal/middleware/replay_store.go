package middleware

import (
	"sync"
	"time"
)

// replay is a stored response.
type replay struct {
	status  int
	header  map[string]string
	body    []byte
	expires time.Time
}

// ReplayStore keeps responses for idempotent replays until their TTL elapses. Expired
// entries are dropped on lookup and swept whenever the store doubles in size.
type ReplayStore struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]replay
	sweepSize int
}

const minSweepSize = 64

// NewReplayStore creates a store whose entries live for ttl.
func NewReplayStore(ttl time.Duration) *ReplayStore {
	return &ReplayStore{
		ttl:       ttl,
		now:       time.Now,
		entries:   make(map[string]replay),
		sweepSize: minSweepSize,
	}
}

// Get returns the live replay stored under fingerprint.
func (s *ReplayStore) Get(fingerprint string) (replay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.entries[fingerprint]
	if !ok {
		return replay{}, false
	}
	if !s.now().Before(r.expires) {
		delete(s.entries, fingerprint)
		return replay{}, false
	}
	return r, true
}

// Put stores r under fingerprint, replacing any previous entry.
func (s *ReplayStore) Put(fingerprint string, r replay) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r.expires = now.Add(s.ttl)
	s.entries[fingerprint] = r

	if len(s.entries) < s.sweepSize {
		return
	}
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
	s.sweepSize = max(minSweepSize, 2*len(s.entries))
}

// Len returns the number of stored entries, expired or not.
func (s *ReplayStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
