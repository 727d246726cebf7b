package config

import (
    "os"
    "testing"
)

func TestLoadDefaults(t *testing.T) {
    // Clear relevant envs
    os.Unsetenv("PORT")
    os.Unsetenv("LOG_LEVEL")
    os.Unsetenv("CALL_DIAL_DELAY_MS")
    os.Unsetenv("MONEY_LOCALE")

    c := Load()

    if c.Server.Port != "8080" {
        t.Fatalf("expected default port 8080, got %q", c.Server.Port)
    }
    if c.Server.LogLevel != "info" {
        t.Fatalf("expected default log level info, got %q", c.Server.LogLevel)
    }
    if c.Call.DialDelayMs != 1500 {
        t.Fatalf("expected default dial delay 1500, got %d", c.Call.DialDelayMs)
    }
    if c.Money.Locale != "en-US" {
        t.Fatalf("expected default locale en-US, got %q", c.Money.Locale)
    }
}

func TestLoadEnvOverride(t *testing.T) {
    os.Setenv("CALL_LINE_GAP_MS", "25")
    defer os.Unsetenv("CALL_LINE_GAP_MS")

    c := Load()
    if c.Call.LineGapMs != 25 {
        t.Fatalf("expected line gap 25 from env, got %d", c.Call.LineGapMs)
    }
}
