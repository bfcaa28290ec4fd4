package section

import (
	"testing"
	"time"
)

func TestTimer_ExpiresOnce(t *testing.T) {
	var tm Timer
	tag := tm.Start(5 * time.Second)

	expiries := 0
	for i := 0; i < 5; i++ {
		ok, expired := tm.Tick(tag)
		if !ok {
			t.Fatalf("tick %d rejected", i)
		}
		if expired {
			expiries++
		}
	}
	if expiries != 1 {
		t.Fatalf("expected 1 expiry, got %d", expiries)
	}
	if tm.Remaining() != 0 || tm.Running() {
		t.Fatalf("expected stopped at 0, got remaining=%d running=%v", tm.Remaining(), tm.Running())
	}
	if ok, _ := tm.Tick(tag); ok {
		t.Fatal("tick after expiry should be ignored")
	}
}

func TestTimer_ResetInvalidatesOldTag(t *testing.T) {
	var tm Timer
	old := tm.Start(10 * time.Second)
	tm.Tick(old)

	fresh := tm.Reset(3 * time.Second)
	if fresh == old {
		t.Fatal("reset should issue a new tag")
	}
	if ok, _ := tm.Tick(old); ok {
		t.Fatal("stale tag should be ignored")
	}
	if tm.Remaining() != 3 {
		t.Fatalf("expected 3 remaining, got %d", tm.Remaining())
	}
}

func TestTimer_Stop(t *testing.T) {
	var tm Timer
	tag := tm.Start(10 * time.Second)
	tm.Stop()
	if ok, _ := tm.Tick(tag); ok {
		t.Fatal("tick after stop should be ignored")
	}
	if tm.Remaining() != 10 {
		t.Fatalf("stop should keep remaining, got %d", tm.Remaining())
	}
}

func TestTimer_NothingLeftExpiresOnFirstTick(t *testing.T) {
	for _, d := range []time.Duration{0, 500 * time.Millisecond, -time.Second} {
		var tm Timer
		tag := tm.Start(d)
		if !tm.Running() || tm.Remaining() != 0 {
			t.Fatalf("%v: running=%v remaining=%d", d, tm.Running(), tm.Remaining())
		}
		ok, expired := tm.Tick(tag)
		if !ok || !expired {
			t.Fatalf("%v: first tick ok=%v expired=%v", d, ok, expired)
		}
		if ok, _ := tm.Tick(tag); ok {
			t.Fatalf("%v: tick after expiry should be ignored", d)
		}
	}
}

func TestTimer_SubSecondRoundsDown(t *testing.T) {
	var tm Timer
	tm.Start(2500 * time.Millisecond)
	if tm.Remaining() != 2 {
		t.Fatalf("expected 2, got %d", tm.Remaining())
	}
}
