package api

import (
    "encoding/json"
    "errors"
    "net/http"
    "time"

    "dialout/internal/auth"
    "dialout/internal/call"
    "dialout/internal/config"
    "dialout/internal/order"
    "dialout/internal/transcript"
)

type Handlers struct {
    cfg  config.Config
    reg  *order.Registry
    orch *call.Orchestrator
    log  *transcript.Log
}

func NewHandlers(cfg config.Config, reg *order.Registry, orch *call.Orchestrator, tl *transcript.Log) *Handlers {
    return &Handlers{cfg: cfg, reg: reg, orch: orch, log: tl}
}

func (h *Handlers) HandleListOrders(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, map[string]any{"orders": h.reg.List()})
}

func (h *Handlers) HandleGetOrder(w http.ResponseWriter, r *http.Request, id string) {
    ord, ok := h.reg.Get(id)
    if !ok {
        http.NotFound(w, r)
        return
    }
    writeJSON(w, map[string]any{"order": ord})
}

func (h *Handlers) HandleStartCall(w http.ResponseWriter, r *http.Request) {
    var req struct {
        OrderID string `json:"order_id"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
        http.Error(w, "missing order_id", http.StatusBadRequest)
        return
    }
    if err := h.orch.Start(req.OrderID); err != nil {
        h.callError(w, err)
        return
    }
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleRespond(w http.ResponseWriter, r *http.Request) {
    var req struct {
        Type string `json:"type"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
        http.Error(w, "missing response type", http.StatusBadRequest)
        return
    }
    if err := h.orch.Respond(call.Response(req.Type)); err != nil {
        h.callError(w, err)
        return
    }
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleChooseSlot(w http.ResponseWriter, r *http.Request) {
    var req struct {
        Slot string `json:"slot"`
    }
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Slot == "" {
        http.Error(w, "missing slot", http.StatusBadRequest)
        return
    }
    if err := h.orch.ChooseSlot(req.Slot); err != nil {
        h.callError(w, err)
        return
    }
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleToggleMute(w http.ResponseWriter, r *http.Request) {
    muted, err := h.orch.ToggleMute()
    if err != nil {
        h.callError(w, err)
        return
    }
    writeJSON(w, map[string]any{"muted": muted, "session": h.orch.Snapshot()})
}

func (h *Handlers) HandleEscalate(w http.ResponseWriter, r *http.Request) {
    if err := h.orch.Escalate(); err != nil {
        h.callError(w, err)
        return
    }
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleResetCall(w http.ResponseWriter, r *http.Request) {
    h.orch.Reset()
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleGetCall(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, map[string]any{"session": h.orch.Snapshot()})
}

func (h *Handlers) HandleGetTranscript(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, map[string]any{"transcript": h.log.Snapshot()})
}

// HandleMintFeedToken issues a bearer token for the UI websocket when feed
// auth is configured.
func (h *Handlers) HandleMintFeedToken(w http.ResponseWriter, r *http.Request) {
    if h.cfg.UI.TokenSecret == "" {
        http.Error(w, "feed auth not configured", http.StatusBadRequest)
        return
    }
    exp := time.Now().Add(time.Duration(h.cfg.UI.TokenExpMin) * time.Minute).Unix()
    tok := auth.GenerateFeedToken(h.cfg.UI.TokenSecret, "operator", exp)
    writeJSON(w, map[string]any{"token": tok, "exp": exp})
}

// callError maps orchestrator errors: unknown order is 404, everything the
// state machine rejects is 409.
func (h *Handlers) callError(w http.ResponseWriter, err error) {
    switch {
    case errors.Is(err, call.ErrUnknownOrder):
        http.Error(w, err.Error(), http.StatusNotFound)
    case errors.Is(err, call.ErrNoOrder),
        errors.Is(err, call.ErrCallActive),
        errors.Is(err, call.ErrNotAwaiting),
        errors.Is(err, call.ErrNoSlotPending),
        errors.Is(err, call.ErrUnknownSlot),
        errors.Is(err, call.ErrUnknownResponse),
        errors.Is(err, call.ErrNotInCall):
        http.Error(w, err.Error(), http.StatusConflict)
    default:
        http.Error(w, err.Error(), http.StatusInternalServerError)
    }
}

func writeJSON(w http.ResponseWriter, v any) {
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(v)
}
