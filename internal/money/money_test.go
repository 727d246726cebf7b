package money

import (
    "strings"
    "testing"
)

func TestFormatUSD(t *testing.T) {
    f := NewFormatter("en-US")
    got := f.Format(18450, "USD")
    if !strings.Contains(got, "184.50") {
        t.Fatalf("expected amount 184.50 in %q", got)
    }
    if !strings.Contains(got, "$") {
        t.Fatalf("expected a currency symbol in %q", got)
    }
}

func TestFormatUnknownCodeFallsBack(t *testing.T) {
    f := NewFormatter("en-US")
    got := f.Format(100, "???")
    if !strings.Contains(got, "1.00") {
        t.Fatalf("expected fallback formatting, got %q", got)
    }
}

func TestFormatBadLocaleFallsBack(t *testing.T) {
    f := NewFormatter("not a locale")
    got := f.Format(2500, "EUR")
    if !strings.Contains(got, "25.00") {
        t.Fatalf("expected 25.00 in %q", got)
    }
}
