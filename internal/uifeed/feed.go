package uifeed

import (
    "context"
    "encoding/json"
    "sync"
    "time"

    ws "nhooyr.io/websocket"
)

// Event is one feed message pushed to connected UIs.
type Event struct {
    Type    string         `json:"type"`
    Ts      time.Time      `json:"timestamp"`
    Payload map[string]any `json:"payload,omitempty"`
}

// Feed fans orchestrator events out to every connected UI client.
type Feed struct {
    mu    sync.Mutex
    conns map[string]*ws.Conn
}

func NewFeed() *Feed {
    return &Feed{conns: make(map[string]*ws.Conn)}
}

func (f *Feed) add(id string, c *ws.Conn) {
    f.mu.Lock()
    f.conns[id] = c
    f.mu.Unlock()
}

func (f *Feed) remove(id string) {
    f.mu.Lock()
    delete(f.conns, id)
    f.mu.Unlock()
}

// Count returns the number of connected clients.
func (f *Feed) Count() int {
    f.mu.Lock()
    defer f.mu.Unlock()
    return len(f.conns)
}

// Broadcast sends an event to every client, best-effort. A slow or dead
// client is dropped rather than allowed to stall the call timeline.
func (f *Feed) Broadcast(typ string, payload map[string]any) {
    evt := Event{Type: typ, Ts: time.Now().UTC(), Payload: payload}
    b, err := json.Marshal(evt)
    if err != nil {
        return
    }

    f.mu.Lock()
    conns := make(map[string]*ws.Conn, len(f.conns))
    for id, c := range f.conns {
        conns[id] = c
    }
    f.mu.Unlock()

    for id, c := range conns {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        if err := c.Write(ctx, ws.MessageText, b); err != nil {
            _ = c.Close(ws.StatusPolicyViolation, "write failed")
            f.remove(id)
        }
        cancel()
    }
}
