package order

import "sync"

// StatusUpdate is the field-level mutation a completed call applies to an order.
// DeliverySlot is only set on reschedule outcomes.
type StatusUpdate struct {
    Status       Status
    DeliverySlot string
}

// Registry holds the session's fixed set of orders. Seeded once; no create,
// no delete. Only UpdateStatus mutates records.
type Registry struct {
    mu     sync.RWMutex
    byID   map[string]*Order
    idents []string // insertion order
}

func NewRegistry() *Registry {
    return &Registry{byID: make(map[string]*Order)}
}

func (r *Registry) add(o Order) {
    r.byID[o.ID] = &o
    r.idents = append(r.idents, o.ID)
}

// List returns all orders in insertion order. Copies, so callers cannot
// mutate registry state.
func (r *Registry) List() []Order {
    r.mu.RLock()
    defer r.mu.RUnlock()
    out := make([]Order, 0, len(r.idents))
    for _, id := range r.idents {
        out = append(out, *r.byID[id])
    }
    return out
}

// Get returns a copy of the order with the given id.
func (r *Registry) Get(id string) (Order, bool) {
    r.mu.RLock()
    defer r.mu.RUnlock()
    o, ok := r.byID[id]
    if !ok {
        return Order{}, false
    }
    return *o, true
}

// UpdateStatus applies upd to the order matching id. Unknown ids are a no-op;
// there is nothing useful for a caller to do about them mid-call.
func (r *Registry) UpdateStatus(id string, upd StatusUpdate) bool {
    r.mu.Lock()
    defer r.mu.Unlock()
    o, ok := r.byID[id]
    if !ok {
        return false
    }
    o.Status = upd.Status
    if upd.DeliverySlot != "" {
        o.DeliverySlot = upd.DeliverySlot
    }
    return true
}
