package uifeed

import (
    "log"
    "net/http"
    "time"

    "github.com/google/uuid"

    "dialout/internal/auth"
    "dialout/internal/config"

    ws "nhooyr.io/websocket"
)

// Server upgrades browser connections onto the feed.
type Server struct {
    Cfg  config.Config
    Feed *Feed
}

func NewServer(cfg config.Config, f *Feed) *Server {
    return &Server{Cfg: cfg, Feed: f}
}

// HandleUIWS accepts a UI websocket and keeps it on the feed until it
// closes. When a token secret is configured the client must present a
// valid feed token as a query parameter (browsers cannot set headers on
// websocket upgrades).
func (s *Server) HandleUIWS(w http.ResponseWriter, r *http.Request) {
    if s.Cfg.UI.TokenSecret != "" {
        token := r.URL.Query().Get("token")
        if token == "" {
            http.Error(w, "missing token", http.StatusUnauthorized)
            return
        }
        if _, _, err := auth.ValidateFeedToken(s.Cfg.UI.TokenSecret, token, "operator", time.Now(), s.Cfg.UI.TokenSkewSecs); err != nil {
            http.Error(w, "invalid token", http.StatusUnauthorized)
            return
        }
    }

    c, err := ws.Accept(w, r, nil)
    if err != nil {
        log.Printf("[uifeed] accept: %v", err)
        return
    }
    id := uuid.NewString()
    s.Feed.add(id, c)
    log.Printf("[uifeed] client connected (%d total)", s.Feed.Count())

    ctx := r.Context()
    for {
        // The UI only listens; drain anything it sends until close.
        if _, _, err := c.Read(ctx); err != nil {
            break
        }
    }
    s.Feed.remove(id)
    _ = c.Close(ws.StatusNormalClosure, "done")
    log.Printf("[uifeed] client disconnected (%d total)", s.Feed.Count())
}
