package tts

import "context"

// Sink receives synthesized audio for an utterance. The orchestrator wires
// this to the UI feed so the browser plays the agent's voice.
type Sink func(utteranceID string, mime string, audio []byte)

// Speaker turns an agent line into audio. Speak blocks until synthesis
// completes, fails, or is cancelled; Stop cancels any in-progress utterance.
type Speaker interface {
    Speak(ctx context.Context, utteranceID, text string) error
    Stop()
}

// Noop is used when no TTS credentials are configured. Playback is treated
// as instantly complete so the call script proceeds unchanged.
type Noop struct{}

func (Noop) Speak(ctx context.Context, utteranceID, text string) error { return nil }
func (Noop) Stop()                                                     {}
