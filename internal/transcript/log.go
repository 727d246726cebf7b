package transcript

import (
    "sync"
    "time"

    "github.com/google/uuid"
)

// Speaker identifies which side of the call produced a line.
type Speaker string

const (
    SpeakerAgent    Speaker = "agent"
    SpeakerCustomer Speaker = "customer"
    SpeakerSystem   Speaker = "system"
)

// Entry is one line of the call transcript. AwaitingResponse is set only on
// agent lines that gate the script on an operator-chosen branch.
type Entry struct {
    ID               string    `json:"id"`
    Speaker          Speaker   `json:"speaker"`
    Message          string    `json:"message"`
    Timestamp        time.Time `json:"timestamp"`
    AwaitingResponse bool      `json:"awaiting_response,omitempty"`
}

// Log is the append-only transcript for the one active call. Cleared on
// call reset, never edited in place.
type Log struct {
    mu      sync.RWMutex
    entries []Entry
}

func NewLog() *Log {
    return &Log{}
}

func (l *Log) Append(sp Speaker, msg string, awaiting bool) Entry {
    e := Entry{
        ID:               uuid.NewString(),
        Speaker:          sp,
        Message:          msg,
        Timestamp:        time.Now().UTC(),
        AwaitingResponse: awaiting,
    }
    l.mu.Lock()
    l.entries = append(l.entries, e)
    l.mu.Unlock()
    return e
}

// Snapshot returns a shallow copy so callers cannot mutate the log.
func (l *Log) Snapshot() []Entry {
    l.mu.RLock()
    defer l.mu.RUnlock()
    out := make([]Entry, len(l.entries))
    copy(out, l.entries)
    return out
}

// Last returns the most recent entry, if any.
func (l *Log) Last() (Entry, bool) {
    l.mu.RLock()
    defer l.mu.RUnlock()
    if len(l.entries) == 0 {
        return Entry{}, false
    }
    return l.entries[len(l.entries)-1], true
}

func (l *Log) Len() int {
    l.mu.RLock()
    defer l.mu.RUnlock()
    return len(l.entries)
}

func (l *Log) Clear() {
    l.mu.Lock()
    l.entries = nil
    l.mu.Unlock()
}
