package call

import (
    "sync/atomic"
    "testing"
    "time"
)

func TestSchedulerFires(t *testing.T) {
    s := newScheduler()
    fired := make(chan uint64, 1)
    s.Schedule(time.Millisecond, func(e uint64) { fired <- e })

    select {
    case e := <-fired:
        if !s.Current(e) {
            t.Fatal("fired callback should carry the live epoch")
        }
    case <-time.After(time.Second):
        t.Fatal("timer never fired")
    }
}

func TestCancelAllStopsPending(t *testing.T) {
    s := newScheduler()
    var fired atomic.Int32
    for i := 0; i < 5; i++ {
        s.Schedule(50*time.Millisecond, func(e uint64) {
            if s.Current(e) {
                fired.Add(1)
            }
        })
    }
    s.CancelAll()
    if s.Pending() != 0 {
        t.Fatalf("expected no pending timers, got %d", s.Pending())
    }
    time.Sleep(100 * time.Millisecond)
    if n := fired.Load(); n != 0 {
        t.Fatalf("%d cancelled timers still acted", n)
    }
}

func TestCancelAllInvalidatesInFlightEpoch(t *testing.T) {
    s := newScheduler()
    gate := make(chan struct{})
    result := make(chan bool, 1)
    s.Schedule(0, func(e uint64) {
        <-gate
        result <- s.Current(e)
    })
    // Let the timer fire, then cancel while its callback is parked.
    time.Sleep(10 * time.Millisecond)
    s.CancelAll()
    close(gate)
    if <-result {
        t.Fatal("callback from a cancelled epoch still considered current")
    }
}
