package tts

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

func TestSpeakDeliversAudioToSink(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Header.Get("xi-api-key") != "key" {
            http.Error(w, "unauthorized", http.StatusUnauthorized)
            return
        }
        if !strings.Contains(r.URL.Path, "/text-to-speech/voice1") {
            http.NotFound(w, r)
            return
        }
        w.Write([]byte("mp3bytes"))
    }))
    defer srv.Close()

    var gotID, gotMime string
    var gotAudio []byte
    c := NewElevenLabs("key", "voice1", func(id, mime string, audio []byte) {
        gotID, gotMime, gotAudio = id, mime, audio
    })
    c.base = srv.URL

    if err := c.Speak(context.Background(), "u1", "hello"); err != nil {
        t.Fatalf("speak: %v", err)
    }
    if gotID != "u1" || gotMime != "audio/mpeg" || string(gotAudio) != "mp3bytes" {
        t.Fatalf("sink got id=%q mime=%q audio=%q", gotID, gotMime, gotAudio)
    }
}

func TestSpeakErrorStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        http.Error(w, "bad voice", http.StatusNotFound)
    }))
    defer srv.Close()

    called := false
    c := NewElevenLabs("key", "voice1", func(id, mime string, audio []byte) { called = true })
    c.base = srv.URL

    if err := c.Speak(context.Background(), "u1", "hello"); err == nil {
        t.Fatal("expected an error on non-2xx status")
    }
    if called {
        t.Fatal("sink must not be invoked on synthesis failure")
    }
}

func TestStopCancelsInFlight(t *testing.T) {
    started := make(chan struct{})
    release := make(chan struct{})
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        close(started)
        <-release
        w.Write([]byte("late"))
    }))
    defer srv.Close()
    defer close(release)

    c := NewElevenLabs("key", "voice1", nil)
    c.base = srv.URL

    done := make(chan error, 1)
    go func() { done <- c.Speak(context.Background(), "u1", "hello") }()

    <-started
    c.Stop()

    if err := <-done; err == nil {
        t.Fatal("expected cancellation error from Speak")
    }
}

func TestNoopSpeakerCompletesInstantly(t *testing.T) {
    var s Speaker = Noop{}
    if err := s.Speak(context.Background(), "u1", "hello"); err != nil {
        t.Fatalf("noop speak: %v", err)
    }
    s.Stop()
}
