package tts

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "sync"
    "time"
)

// ElevenLabs synthesizes speech through the ElevenLabs REST API and hands
// the audio to a sink. At most one utterance is in flight; starting a new
// one cancels the previous so audio never overlaps.
type ElevenLabs struct {
    http    *http.Client
    apiKey  string
    voiceID string
    base    string
    sink    Sink

    mu     sync.Mutex
    cancel context.CancelFunc
}

func NewElevenLabs(apiKey, voiceID string, sink Sink) *ElevenLabs {
    return &ElevenLabs{
        http:    &http.Client{Timeout: 30 * time.Second},
        apiKey:  apiKey,
        voiceID: voiceID,
        base:    "https://api.elevenlabs.io/v1",
        sink:    sink,
    }
}

func (c *ElevenLabs) Speak(ctx context.Context, utteranceID, text string) error {
    ctx, cancel := context.WithCancel(ctx)
    c.mu.Lock()
    if c.cancel != nil {
        c.cancel()
    }
    c.cancel = cancel
    c.mu.Unlock()
    defer func() {
        c.mu.Lock()
        if c.cancel != nil {
            c.cancel()
            c.cancel = nil
        }
        c.mu.Unlock()
    }()

    start := time.Now()
    body := map[string]any{"text": text}
    reqBytes, _ := json.Marshal(body)
    url := fmt.Sprintf("%s/text-to-speech/%s", c.base, c.voiceID)
    req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
    if err != nil {
        ttsSynthesisTotal.WithLabelValues("error").Inc()
        return err
    }
    req.Header.Set("xi-api-key", c.apiKey)
    req.Header.Set("accept", "audio/mpeg")
    req.Header.Set("content-type", "application/json")

    resp, err := c.http.Do(req)
    if err != nil {
        if ctx.Err() != nil {
            ttsSynthesisTotal.WithLabelValues("cancelled").Inc()
            return ctx.Err()
        }
        ttsSynthesisTotal.WithLabelValues("error").Inc()
        return err
    }
    defer resp.Body.Close()
    if resp.StatusCode/100 != 2 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
        ttsSynthesisTotal.WithLabelValues("error").Inc()
        return fmt.Errorf("elevenlabs: status=%d body=%s", resp.StatusCode, string(b))
    }

    audio, err := io.ReadAll(resp.Body)
    if err != nil {
        if ctx.Err() != nil {
            ttsSynthesisTotal.WithLabelValues("cancelled").Inc()
            return ctx.Err()
        }
        ttsSynthesisTotal.WithLabelValues("error").Inc()
        return err
    }

    ttsSynthesisMS.Observe(float64(time.Since(start).Milliseconds()))
    ttsSynthesisTotal.WithLabelValues("ok").Inc()
    if c.sink != nil {
        c.sink(utteranceID, "audio/mpeg", audio)
    }
    return nil
}

// Stop cancels the in-flight utterance, if any.
func (c *ElevenLabs) Stop() {
    c.mu.Lock()
    if c.cancel != nil {
        c.cancel()
        c.cancel = nil
    }
    c.mu.Unlock()
}
