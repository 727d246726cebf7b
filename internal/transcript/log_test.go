package transcript

import "testing"

func TestAppendAndSnapshot(t *testing.T) {
    l := NewLog()
    l.Append(SpeakerSystem, "dialing", false)
    l.Append(SpeakerAgent, "hello", true)

    snap := l.Snapshot()
    if len(snap) != 2 {
        t.Fatalf("expected 2 entries, got %d", len(snap))
    }
    if snap[1].Speaker != SpeakerAgent || !snap[1].AwaitingResponse {
        t.Fatalf("unexpected second entry: %+v", snap[1])
    }

    // Mutating the snapshot must not touch the log.
    snap[0].Message = "edited"
    if again := l.Snapshot(); again[0].Message != "dialing" {
        t.Fatal("snapshot leaked a mutable reference")
    }
}

func TestLastEmpty(t *testing.T) {
    l := NewLog()
    if _, ok := l.Last(); ok {
        t.Fatal("expected no last entry on an empty log")
    }
}

func TestClearIsIdempotent(t *testing.T) {
    l := NewLog()
    l.Append(SpeakerAgent, "a", false)
    l.Clear()
    l.Clear()
    if l.Len() != 0 {
        t.Fatalf("expected empty log after clear, got %d entries", l.Len())
    }
}
