package call

import (
    "context"
    "errors"
    "log"
    "sync"
    "time"

    "dialout/internal/config"
    "dialout/internal/money"
    "dialout/internal/order"
    "dialout/internal/transcript"
    "dialout/internal/tts"
)

// State of the active call session.
type State string

const (
    StateIdle             State = "idle"
    StateDialing          State = "dialing"
    StateSpeaking         State = "speaking"
    StateAwaitingResponse State = "awaiting_response"
    StateResolved         State = "resolved"
    StateMuted            State = "muted"
)

// Outcome is the terminal classification of a resolved call.
type Outcome string

const (
    OutcomeNone         Outcome = ""
    OutcomeConfirmed    Outcome = "confirmed"
    OutcomeRescheduled  Outcome = "rescheduled"
    OutcomeCancelled    Outcome = "cancelled"
    OutcomeNeedsSupport Outcome = "needs_support"
)

// Response is an operator-chosen customer reply at a script gate.
type Response string

const (
    ResponseConfirm    Response = "confirm"
    ResponseReschedule Response = "reschedule"
    ResponseCancel     Response = "cancel"
    ResponseQuery      Response = "query"
)

var (
    ErrNoOrder         = errors.New("no order selected")
    ErrUnknownOrder    = errors.New("unknown order")
    ErrCallActive      = errors.New("a call is already active")
    ErrNotAwaiting     = errors.New("not awaiting a response")
    ErrNoSlotPending   = errors.New("no reschedule slot pending")
    ErrUnknownResponse = errors.New("unknown response type")
    ErrUnknownSlot     = errors.New("unknown delivery slot")
    ErrNotInCall       = errors.New("call not in flight")
)

// Notify receives orchestrator events for the UI feed.
type Notify func(event string, payload map[string]any)

// session is the ephemeral state of the one active call.
type session struct {
    orderID        string
    state          State
    outcome        Outcome
    rescheduleSlot string
    muted          bool
    pendingUpdate  *order.StatusUpdate
}

// Snapshot is a read-only copy of the session handed to the API layer.
type Snapshot struct {
    OrderID          string   `json:"order_id,omitempty"`
    State            State    `json:"state"`
    Outcome          Outcome  `json:"outcome,omitempty"`
    RescheduleSlot   string   `json:"reschedule_slot,omitempty"`
    Muted            bool     `json:"muted"`
    AwaitingResponse bool     `json:"awaiting_response"`
    SlotOptions      []string `json:"slot_options,omitempty"`
}

// Orchestrator drives the one active call through the confirmation script:
// it appends transcript lines on a cancellable timer group, requests TTS
// playback for agent lines, and commits the branch outcome to the order
// registry when the closing line fires.
type Orchestrator struct {
    mu      sync.Mutex
    reg     *order.Registry
    log     *transcript.Log
    speaker tts.Speaker
    fmtr    *money.Formatter
    notify  Notify
    sched   *scheduler

    dialDelay    time.Duration
    lineGap      time.Duration
    resolveDelay time.Duration

    sess session
}

func New(cfg config.Config, reg *order.Registry, tl *transcript.Log, sp tts.Speaker, notify Notify) *Orchestrator {
    if notify == nil {
        notify = func(string, map[string]any) {}
    }
    return &Orchestrator{
        reg:          reg,
        log:          tl,
        speaker:      sp,
        fmtr:         money.NewFormatter(cfg.Money.Locale),
        notify:       notify,
        sched:        newScheduler(),
        dialDelay:    time.Duration(cfg.Call.DialDelayMs) * time.Millisecond,
        lineGap:      time.Duration(cfg.Call.LineGapMs) * time.Millisecond,
        resolveDelay: time.Duration(cfg.Call.ResolveDelayMs) * time.Millisecond,
        sess:         session{state: StateIdle},
    }
}

// Start dials the selected order: a system line immediately, the scripted
// greeting after the dial delay.
func (o *Orchestrator) Start(orderID string) error {
    o.mu.Lock()
    defer o.mu.Unlock()

    // Starting a new call from a resolved one implies tearing the old
    // session down first.
    if o.sess.state == StateResolved {
        o.resetLocked()
    }
    if o.sess.state != StateIdle {
        return ErrCallActive
    }
    ord, ok := o.reg.Get(orderID)
    if !ok {
        return ErrUnknownOrder
    }

    o.sess = session{orderID: ord.ID, state: StateIdle}
    o.setState(StateDialing)
    o.appendLine(transcript.SpeakerSystem, dialingLine(ord), false)

    o.after(o.dialDelay, func() {
        o.playLines(openingLines(ord, o.fmtr))
    })
    return nil
}

// Respond advances the script out of a gate with the operator-chosen
// customer reply. Only valid while the last agent line awaits a response.
func (o *Orchestrator) Respond(r Response) error {
    o.mu.Lock()
    defer o.mu.Unlock()

    if o.sess.orderID == "" {
        return ErrNoOrder
    }
    if !o.awaitingGate() {
        return ErrNotAwaiting
    }
    // The slot menu gate is answered with ChooseSlot, not a response type.
    if o.sess.outcome == OutcomeRescheduled && o.sess.rescheduleSlot == "" {
        return ErrNotAwaiting
    }
    br, ok := branches[r]
    if !ok {
        return ErrUnknownResponse
    }
    ord, ok := o.reg.Get(o.sess.orderID)
    if !ok {
        return ErrUnknownOrder
    }

    o.appendLine(transcript.SpeakerCustomer, br.customerLine, false)
    o.sess.outcome = br.outcome
    o.sess.pendingUpdate = br.update
    if !o.sess.muted {
        o.setState(StateSpeaking)
    }

    followups := br.followups(ord, o.fmtr)
    o.after(o.lineGap, func() {
        o.playLines(followups)
    })
    return nil
}

// ChooseSlot picks a delivery window from the reschedule menu. Only valid
// while a reschedule outcome has no slot yet.
func (o *Orchestrator) ChooseSlot(slot string) error {
    o.mu.Lock()
    defer o.mu.Unlock()

    if o.sess.orderID == "" {
        return ErrNoOrder
    }
    if o.sess.outcome != OutcomeRescheduled || o.sess.rescheduleSlot != "" || !o.awaitingGate() {
        return ErrNoSlotPending
    }
    if !validSlot(slot) {
        return ErrUnknownSlot
    }

    o.sess.rescheduleSlot = slot
    o.sess.pendingUpdate = &order.StatusUpdate{Status: order.StatusConfirmed, DeliverySlot: slot}
    o.appendLine(transcript.SpeakerCustomer, slotChosenLine(slot), false)
    if !o.sess.muted {
        o.setState(StateSpeaking)
    }

    lines := slotLines(slot)
    o.after(o.lineGap, func() {
        o.playLines(lines)
    })
    return nil
}

// Escalate hands the call to a human. Always available once an order is
// selected, regardless of script position; resolves immediately.
func (o *Orchestrator) Escalate() error {
    o.mu.Lock()
    defer o.mu.Unlock()

    if o.sess.orderID == "" {
        return ErrNoOrder
    }
    // Abandon whatever the script had queued.
    o.sched.CancelAll()

    o.sess.outcome = OutcomeNeedsSupport
    o.sess.pendingUpdate = &order.StatusUpdate{Status: order.StatusRequiresFollowup}
    o.deliver(line{text: escalationLine})
    o.finalize()
    return nil
}

// ToggleMute suppresses or restores audio playback. The script keeps
// advancing either way; only playback is affected.
func (o *Orchestrator) ToggleMute() (bool, error) {
    o.mu.Lock()
    defer o.mu.Unlock()

    if o.sess.state == StateIdle || o.sess.state == StateResolved {
        return false, ErrNotInCall
    }
    o.sess.muted = !o.sess.muted
    if o.sess.muted {
        o.speaker.Stop()
        o.setState(StateMuted)
    } else if o.log.Len() > 1 {
        // More than the system dialing line has fired.
        o.setState(StateSpeaking)
    } else {
        o.setState(StateDialing)
    }
    return o.sess.muted, nil
}

// Reset tears the session down: cancels every pending timer, stops audio,
// clears the transcript, returns to idle. Safe to call repeatedly.
func (o *Orchestrator) Reset() {
    o.mu.Lock()
    defer o.mu.Unlock()
    o.resetLocked()
    o.notify("call_state", o.statePayload())
}

func (o *Orchestrator) resetLocked() {
    o.sched.CancelAll()
    o.speaker.Stop()
    o.log.Clear()
    o.sess = session{state: StateIdle}
    metricResets.Inc()
}

// Snapshot returns a copy of the session for rendering.
func (o *Orchestrator) Snapshot() Snapshot {
    o.mu.Lock()
    defer o.mu.Unlock()
    return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
    s := Snapshot{
        OrderID:          o.sess.orderID,
        State:            o.sess.state,
        Outcome:          o.sess.outcome,
        RescheduleSlot:   o.sess.rescheduleSlot,
        Muted:            o.sess.muted,
        AwaitingResponse: o.awaitingGate(),
    }
    if o.sess.outcome == OutcomeRescheduled && o.sess.rescheduleSlot == "" {
        s.SlotOptions = append([]string(nil), SlotOptions...)
    }
    return s
}

// awaitingGate reports whether the script is parked at an operator gate.
// The transcript flag is the source of truth, not the display state: a
// muted call still exposes its gate.
func (o *Orchestrator) awaitingGate() bool {
    if o.sess.state == StateResolved {
        return false
    }
    last, ok := o.log.Last()
    return ok && last.AwaitingResponse
}

// playLines delivers the first line now and schedules the rest, one line
// per gap. Callers hold o.mu.
func (o *Orchestrator) playLines(lines []line) {
    if len(lines) == 0 {
        return
    }
    o.deliver(lines[0])
    rest := lines[1:]
    if len(rest) > 0 {
        o.after(o.lineGap, func() {
            o.playLines(rest)
        })
    }
}

// deliver appends an agent line, requests playback unless muted, and moves
// the state machine. Callers hold o.mu.
func (o *Orchestrator) deliver(l line) {
    entry := o.appendLine(transcript.SpeakerAgent, l.text, l.awaiting)

    if !o.sess.muted {
        go o.speak(entry.ID, l.text)
    }

    switch {
    case l.resolve:
        o.after(o.resolveDelay, o.finalize)
    case l.awaiting:
        if !o.sess.muted {
            o.setState(StateAwaitingResponse)
        }
    default:
        if !o.sess.muted {
            o.setState(StateSpeaking)
        }
    }
}

// finalize commits the staged registry update and resolves the call.
// Callers hold o.mu.
func (o *Orchestrator) finalize() {
    if o.sess.pendingUpdate != nil {
        o.reg.UpdateStatus(o.sess.orderID, *o.sess.pendingUpdate)
        o.sess.pendingUpdate = nil
        if ord, ok := o.reg.Get(o.sess.orderID); ok {
            o.notify("order_updated", map[string]any{"order": ord})
        }
    }
    metricResolved.WithLabelValues(string(o.sess.outcome)).Inc()
    o.setState(StateResolved)
}

func (o *Orchestrator) appendLine(sp transcript.Speaker, msg string, awaiting bool) transcript.Entry {
    entry := o.log.Append(sp, msg, awaiting)
    metricLines.WithLabelValues(string(sp)).Inc()
    o.notify("line", map[string]any{"entry": entry})
    return entry
}

// speak runs TTS off the orchestrator goroutine. Starting a new utterance
// cancels the previous one inside the speaker, so audio never overlaps.
func (o *Orchestrator) speak(utteranceID, text string) {
    err := o.speaker.Speak(context.Background(), utteranceID, text)
    if err != nil && !errors.Is(err, context.Canceled) {
        log.Printf("[call] tts: %v", err)
    }
}

func (o *Orchestrator) setState(to State) {
    from := o.sess.state
    if from == to {
        return
    }
    metricStateTransitions.WithLabelValues(string(from), string(to)).Inc()
    o.sess.state = to
    log.Printf("[call] state %s -> %s", from, to)
    o.notify("call_state", o.statePayload())
}

func (o *Orchestrator) statePayload() map[string]any {
    return map[string]any{"session": o.snapshotLocked()}
}

// after schedules fn on the session timeline. The epoch check under o.mu
// guarantees no callback from a reset session ever touches the new one.
func (o *Orchestrator) after(d time.Duration, fn func()) {
    o.sched.Schedule(d, func(epoch uint64) {
        o.mu.Lock()
        defer o.mu.Unlock()
        if !o.sched.Current(epoch) {
            return
        }
        fn()
    })
}

func validSlot(slot string) bool {
    for _, s := range SlotOptions {
        if s == slot {
            return true
        }
    }
    return false
}
