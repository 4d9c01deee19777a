package clock

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualFiresInDeadlineOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var got []string
	v.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	v.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	v.AfterFunc(100*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(99 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("fired early: %v", got)
	}

	v.Advance(time.Second)
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("firing order mismatch (-want +got):\n%s", diff)
	}
	if got := v.Elapsed(epoch); got != 1099*time.Millisecond {
		t.Errorf("Elapsed() = %v, want %v", got, 1099*time.Millisecond)
	}
}

func TestVirtualCallbackSeesDeadline(t *testing.T) {
	v := NewVirtual(epoch)
	var at time.Duration
	v.AfterFunc(250*time.Millisecond, func() { at = v.Elapsed(epoch) })
	v.Advance(time.Second)
	if at != 250*time.Millisecond {
		t.Errorf("callback ran at %v, want %v", at, 250*time.Millisecond)
	}
}

func TestVirtualStop(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	timer := v.AfterFunc(time.Millisecond, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}
	v.Advance(time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if v.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", v.Pending())
	}
}

func TestVirtualStopAfterFire(t *testing.T) {
	v := NewVirtual(epoch)
	timer := v.AfterFunc(time.Millisecond, func() {})
	v.Advance(time.Millisecond)
	if timer.Stop() {
		t.Error("Stop() after firing = true, want false")
	}
}

func TestVirtualChainedTimers(t *testing.T) {
	v := NewVirtual(epoch)
	var got []time.Duration
	v.AfterFunc(100*time.Millisecond, func() {
		got = append(got, v.Elapsed(epoch))
		v.AfterFunc(100*time.Millisecond, func() {
			got = append(got, v.Elapsed(epoch))
		})
	})

	v.Advance(150 * time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("after 150ms fired %d timers, want 1", len(got))
	}
	v.Advance(50 * time.Millisecond)
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("chained firing mismatch (-want +got):\n%s", diff)
	}
}

func TestVirtualStopFromCallback(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	var later Timer
	v.AfterFunc(10*time.Millisecond, func() { later.Stop() })
	later = v.AfterFunc(20*time.Millisecond, func() { fired = true })

	v.Advance(time.Second)
	if fired {
		t.Error("timer stopped by an earlier callback still fired")
	}
}

func TestVirtualNext(t *testing.T) {
	v := NewVirtual(epoch)
	if _, ok := v.Next(); ok {
		t.Error("Next() on empty clock = true")
	}
	v.AfterFunc(40*time.Millisecond, func() {})
	v.Advance(15 * time.Millisecond)
	if d, ok := v.Next(); !ok || d != 25*time.Millisecond {
		t.Errorf("Next() = %v, %v, want 25ms, true", d, ok)
	}
}

func TestVirtualZeroDelay(t *testing.T) {
	v := NewVirtual(epoch)
	fired := false
	v.AfterFunc(0, func() { fired = true })
	v.Advance(0)
	if !fired {
		t.Error("zero-delay timer did not fire on Advance(0)")
	}
}

func TestRealClock(t *testing.T) {
	c := Real()
	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("real timer did not fire")
	}
	if c.Now().IsZero() {
		t.Error("Now() is zero")
	}
}
