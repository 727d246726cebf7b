package main

import (
    "context"
    "encoding/base64"
    "encoding/json"
    "log"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "dialout/internal/api"
    "dialout/internal/call"
    "dialout/internal/config"
    "dialout/internal/health"
    "dialout/internal/order"
    "dialout/internal/transcript"
    "dialout/internal/tts"
    "dialout/internal/uifeed"
)

func main() {
    // Load .env file if present (ignored if missing)
    _ = godotenv.Load()

    cfg := config.Load()

    reg := order.Seed()
    tl := transcript.NewLog()
    feed := uifeed.NewFeed()

    var speaker tts.Speaker
    if cfg.Eleven.APIKey != "" && cfg.Eleven.VoiceID != "" {
        speaker = tts.NewElevenLabs(cfg.Eleven.APIKey, cfg.Eleven.VoiceID, func(utteranceID, mime string, audio []byte) {
            feed.Broadcast("agent_audio", map[string]any{
                "utterance_id": utteranceID,
                "mime":         mime,
                "audio":        base64.StdEncoding.EncodeToString(audio),
            })
        })
    } else {
        log.Printf("tts not configured; calls will run silent")
        speaker = tts.Noop{}
    }

    orch := call.New(cfg, reg, tl, speaker, feed.Broadcast)
    h := api.NewHandlers(cfg, reg, orch, tl)

    mux := http.NewServeMux()
    mux.Handle("/", api.NewRouter(h))
    mux.Handle("/metrics", promhttp.Handler())
    mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
        ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
        defer cancel()
        status := health.CheckAll(ctx, cfg)
        w.Header().Set("Content-Type", "application/json")
        if !status.OK {
            w.WriteHeader(http.StatusServiceUnavailable)
        }
        _ = json.NewEncoder(w).Encode(status)
    })
    wss := uifeed.NewServer(cfg, feed)
    mux.HandleFunc("/ws/ui", wss.HandleUIWS)

    addr := ":" + cfg.Server.Port
    srv := &http.Server{
        Addr:              addr,
        Handler:           logMiddleware(mux),
        ReadHeaderTimeout: 5 * time.Second,
    }

    // Graceful shutdown on SIGINT/SIGTERM
    sigc := make(chan os.Signal, 1)
    signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
    go func() {
        <-sigc
        log.Printf("shutdown signal received; stopping server...")
        // Tear the active call down first so no timer fires mid-drain.
        orch.Reset()
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = srv.Shutdown(ctx)
    }()

    log.Printf("server starting on %s", addr)
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        log.Println("server error:", err)
        os.Exit(1)
    }
}

func logMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        next.ServeHTTP(w, r)
        log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
    })
}
