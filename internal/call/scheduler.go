package call

import (
    "sync"
    "time"

    "github.com/google/uuid"
)

// scheduler owns every delayed script action for the active call as one
// cancellable group. CancelAll bumps the epoch, so a timer that already
// fired but lost the race still sees its epoch is stale and does nothing.
type scheduler struct {
    mu      sync.Mutex
    epoch   uint64
    pending map[string]*time.Timer
}

func newScheduler() *scheduler {
    return &scheduler{pending: make(map[string]*time.Timer)}
}

// Schedule runs fn after d unless CancelAll intervenes. fn receives the
// epoch the timer was created under and must check Current before acting.
func (s *scheduler) Schedule(d time.Duration, fn func(epoch uint64)) {
    s.mu.Lock()
    defer s.mu.Unlock()
    id := uuid.NewString()
    e := s.epoch
    s.pending[id] = time.AfterFunc(d, func() {
        s.mu.Lock()
        delete(s.pending, id)
        s.mu.Unlock()
        fn(e)
    })
}

// Current reports whether e is still the live epoch.
func (s *scheduler) Current(e uint64) bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    return e == s.epoch
}

// CancelAll stops every pending timer and invalidates in-flight callbacks.
func (s *scheduler) CancelAll() {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.epoch++
    for id, t := range s.pending {
        t.Stop()
        delete(s.pending, id)
    }
}

// Pending returns the number of not-yet-fired timers.
func (s *scheduler) Pending() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.pending)
}
