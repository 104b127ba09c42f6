package clock_test

import (
	"testing"
	"time"

	"ecoscan/internal/platform/clock"
)

func TestStartOfDayKeepsLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("GET", 4*60*60)
	in := time.Date(2026, 3, 14, 23, 59, 12, 5, loc)
	got := clock.StartOfDay(in)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got.Location() != loc {
		t.Fatalf("expected location to be preserved, got %s", got.Location())
	}
}

func TestSystemClockUsesConfiguredLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("TEST", -3*60*60)
	now := clock.SystemClock{Location: loc}.Now()
	if now.Location() != loc {
		t.Fatalf("expected clock to report in %s, got %s", loc, now.Location())
	}
}
