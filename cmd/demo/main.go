package main

import (
    "flag"
    "fmt"
    "log"
    "time"

    "dialout/internal/call"
    "dialout/internal/config"
    "dialout/internal/order"
    "dialout/internal/transcript"
    "dialout/internal/tts"
)

// Offline driver: runs scripted call paths in-process with near-zero pacing
// and prints the transcripts and final order statuses. No network, no TTS.
func main() {
    gap := flag.Duration("gap", 5*time.Millisecond, "Pacing between scripted lines")
    timeout := flag.Duration("timeout", 10*time.Second, "Per-call resolution timeout")
    flag.Parse()

    var cfg config.Config
    cfg.Call.DialDelayMs = int(gap.Milliseconds())
    cfg.Call.LineGapMs = int(gap.Milliseconds())
    cfg.Call.ResolveDelayMs = int(gap.Milliseconds())
    cfg.Money.Locale = "en-US"

    reg := order.Seed()
    tl := transcript.NewLog()
    orch := call.New(cfg, reg, tl, tts.Noop{}, nil)

    fmt.Println("=== Confirm path (ORD-1042) ===")
    runCall(orch, tl, *timeout, func() {
        must(orch.Start("ORD-1042"))
        awaitGate(orch, *timeout)
        must(orch.Respond(call.ResponseConfirm))
    })

    fmt.Println("\n=== Reschedule path (ORD-1043) ===")
    runCall(orch, tl, *timeout, func() {
        must(orch.Start("ORD-1043"))
        awaitGate(orch, *timeout)
        must(orch.Respond(call.ResponseReschedule))
        awaitGate(orch, *timeout)
        must(orch.ChooseSlot(call.SlotOptions[3]))
    })

    fmt.Println("\n=== Final order statuses ===")
    for _, o := range reg.List() {
        fmt.Printf("  %s  %-18s slot=%s\n", o.ID, o.Status, o.DeliverySlot)
    }
}

func runCall(orch *call.Orchestrator, tl *transcript.Log, timeout time.Duration, drive func()) {
    orch.Reset()
    drive()

    deadline := time.Now().Add(timeout)
    for orch.Snapshot().State != call.StateResolved {
        if time.Now().After(deadline) {
            log.Fatalf("call did not resolve within %s", timeout)
        }
        time.Sleep(2 * time.Millisecond)
    }

    for _, e := range tl.Snapshot() {
        fmt.Printf("  [%-8s] %s\n", e.Speaker, e.Message)
    }
    snap := orch.Snapshot()
    fmt.Printf("  -> outcome=%s\n", snap.Outcome)
}

func awaitGate(orch *call.Orchestrator, timeout time.Duration) {
    deadline := time.Now().Add(timeout)
    for !orch.Snapshot().AwaitingResponse {
        if time.Now().After(deadline) {
            log.Fatalf("script gate not reached within %s", timeout)
        }
        time.Sleep(2 * time.Millisecond)
    }
}

func must(err error) {
    if err != nil {
        log.Fatal(err)
    }
}
