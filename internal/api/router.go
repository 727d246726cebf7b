package api

import (
    "net/http"
    "strings"
)

func NewRouter(h *Handlers) http.Handler {
    mux := http.NewServeMux()

    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        w.Write([]byte("ok"))
    })

    mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodGet {
            h.HandleListOrders(w, r)
            return
        }
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    })

    mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/orders/"), "/")
        if id == "" || strings.Contains(id, "/") {
            http.NotFound(w, r)
            return
        }
        h.HandleGetOrder(w, r, id)
    })

    mux.HandleFunc("/call", func(w http.ResponseWriter, r *http.Request) {
        if r.Method == http.MethodGet {
            h.HandleGetCall(w, r)
            return
        }
        http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
    })

    mux.HandleFunc("/call/", func(w http.ResponseWriter, r *http.Request) {
        action := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/call/"), "/")

        if action == "transcript" {
            if r.Method != http.MethodGet {
                http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
                return
            }
            h.HandleGetTranscript(w, r)
            return
        }

        if r.Method != http.MethodPost {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        switch action {
        case "start":
            h.HandleStartCall(w, r)
        case "respond":
            h.HandleRespond(w, r)
        case "slot":
            h.HandleChooseSlot(w, r)
        case "mute":
            h.HandleToggleMute(w, r)
        case "escalate":
            h.HandleEscalate(w, r)
        case "reset":
            h.HandleResetCall(w, r)
        default:
            http.NotFound(w, r)
        }
    })

    mux.HandleFunc("/ws-token", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodPost {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        h.HandleMintFeedToken(w, r)
    })

    return mux
}
