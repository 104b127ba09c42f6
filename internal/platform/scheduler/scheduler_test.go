package scheduler_test

import (
	"testing"
	"time"

	"ecoscan/internal/platform/scheduler"
)

func TestSystemRunsCallback(t *testing.T) {
	t.Parallel()
	done := make(chan struct{})
	scheduler.System{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("callback did not run")
	}
}

func TestSystemStopCancelsCallback(t *testing.T) {
	t.Parallel()
	fired := make(chan struct{}, 1)
	timer := scheduler.System{}.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	if !timer.Stop() {
		t.Fatalf("expected pending timer to stop")
	}
	if timer.Stop() {
		t.Fatalf("second stop must report false")
	}
	select {
	case <-fired:
		t.Fatalf("stopped callback must not run")
	default:
	}
}
