package api

import (
    "bytes"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "dialout/internal/call"
    "dialout/internal/config"
    "dialout/internal/order"
    "dialout/internal/transcript"
    "dialout/internal/tts"
)

func testCfg() config.Config {
    var c config.Config
    c.Call.DialDelayMs = 1
    c.Call.LineGapMs = 1
    c.Call.ResolveDelayMs = 1
    c.Money.Locale = "en-US"
    return c
}

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
    t.Helper()
    reg := order.Seed()
    tl := transcript.NewLog()
    orch := call.New(cfg, reg, tl, tts.Noop{}, nil)
    srv := httptest.NewServer(NewRouter(NewHandlers(cfg, reg, orch, tl)))
    t.Cleanup(srv.Close)
    return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
    t.Helper()
    b, _ := json.Marshal(body)
    resp, err := http.Post(url, "application/json", bytes.NewReader(b))
    if err != nil {
        t.Fatalf("post %s: %v", url, err)
    }
    return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
    t.Helper()
    defer resp.Body.Close()
    if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
        t.Fatalf("decode: %v", err)
    }
}

func TestConfirmFlowOverHTTP(t *testing.T) {
    srv := newTestServer(t, testCfg())

    resp := postJSON(t, srv.URL+"/call/start", map[string]string{"order_id": "ORD-1042"})
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("start: status %d", resp.StatusCode)
    }
    resp.Body.Close()

    // Wait for the opening gate.
    deadline := time.Now().Add(2 * time.Second)
    for {
        var out struct {
            Session call.Snapshot `json:"session"`
        }
        r, err := http.Get(srv.URL + "/call")
        if err != nil {
            t.Fatalf("get call: %v", err)
        }
        decode(t, r, &out)
        if out.Session.AwaitingResponse {
            break
        }
        if time.Now().After(deadline) {
            t.Fatal("opening gate never reached")
        }
        time.Sleep(5 * time.Millisecond)
    }

    resp = postJSON(t, srv.URL+"/call/respond", map[string]string{"type": "confirm"})
    if resp.StatusCode != http.StatusOK {
        t.Fatalf("respond: status %d", resp.StatusCode)
    }
    resp.Body.Close()

    for {
        var out struct {
            Session call.Snapshot `json:"session"`
        }
        r, err := http.Get(srv.URL + "/call")
        if err != nil {
            t.Fatalf("get call: %v", err)
        }
        decode(t, r, &out)
        if out.Session.State == call.StateResolved {
            if out.Session.Outcome != call.OutcomeConfirmed {
                t.Fatalf("expected confirmed outcome, got %s", out.Session.Outcome)
            }
            break
        }
        if time.Now().After(deadline) {
            t.Fatal("call never resolved")
        }
        time.Sleep(5 * time.Millisecond)
    }

    var ordOut struct {
        Order order.Order `json:"order"`
    }
    r, err := http.Get(srv.URL + "/orders/ORD-1042")
    if err != nil {
        t.Fatalf("get order: %v", err)
    }
    decode(t, r, &ordOut)
    if ordOut.Order.Status != order.StatusConfirmed {
        t.Fatalf("expected confirmed order, got %s", ordOut.Order.Status)
    }

    var trOut struct {
        Transcript []transcript.Entry `json:"transcript"`
    }
    r, err = http.Get(srv.URL + "/call/transcript")
    if err != nil {
        t.Fatalf("get transcript: %v", err)
    }
    decode(t, r, &trOut)
    if len(trOut.Transcript) != 6 {
        t.Fatalf("expected 6 transcript lines, got %d", len(trOut.Transcript))
    }
}

func TestStartUnknownOrder404(t *testing.T) {
    srv := newTestServer(t, testCfg())
    resp := postJSON(t, srv.URL+"/call/start", map[string]string{"order_id": "ORD-9999"})
    resp.Body.Close()
    if resp.StatusCode != http.StatusNotFound {
        t.Fatalf("expected 404, got %d", resp.StatusCode)
    }
}

func TestRespondWhileIdle409(t *testing.T) {
    srv := newTestServer(t, testCfg())
    resp := postJSON(t, srv.URL+"/call/respond", map[string]string{"type": "confirm"})
    resp.Body.Close()
    if resp.StatusCode != http.StatusConflict {
        t.Fatalf("expected 409, got %d", resp.StatusCode)
    }
}

func TestStartMissingBody400(t *testing.T) {
    srv := newTestServer(t, testCfg())
    resp := postJSON(t, srv.URL+"/call/start", map[string]string{})
    resp.Body.Close()
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", resp.StatusCode)
    }
}

func TestListOrders(t *testing.T) {
    srv := newTestServer(t, testCfg())
    var out struct {
        Orders []order.Order `json:"orders"`
    }
    r, err := http.Get(srv.URL + "/orders")
    if err != nil {
        t.Fatalf("get orders: %v", err)
    }
    decode(t, r, &out)
    if len(out.Orders) != 3 {
        t.Fatalf("expected 3 orders, got %d", len(out.Orders))
    }
    for _, o := range out.Orders {
        if o.Status != order.StatusPending {
            t.Fatalf("seeded order %s not pending: %s", o.ID, o.Status)
        }
    }
}

func TestFeedTokenEndpoint(t *testing.T) {
    srv := newTestServer(t, testCfg())
    resp := postJSON(t, srv.URL+"/ws-token", nil)
    resp.Body.Close()
    if resp.StatusCode != http.StatusBadRequest {
        t.Fatalf("expected 400 when auth unconfigured, got %d", resp.StatusCode)
    }

    cfg := testCfg()
    cfg.UI.TokenSecret = "secret"
    cfg.UI.TokenExpMin = 60
    srv2 := newTestServer(t, cfg)
    resp = postJSON(t, srv2.URL+"/ws-token", nil)
    var out struct {
        Token string `json:"token"`
        Exp   int64  `json:"exp"`
    }
    decode(t, resp, &out)
    if out.Token == "" || out.Exp <= time.Now().Unix() {
        t.Fatalf("unexpected token response: %+v", out)
    }
}
