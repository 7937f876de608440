package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected reference time, got %v", clock.Now())
	}
}

func TestClockSetAndAdvance(t *testing.T) {
	start := time.Date(2024, time.March, 14, 9, 0, 0, 0, time.UTC)
	clock := NewClock(start)

	if !clock.Now().Equal(start) {
		t.Fatalf("expected start time, got %v", clock.Now())
	}

	advanced := clock.Advance(90 * time.Minute)
	if !advanced.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("expected advance to return the new time, got %v", advanced)
	}
	if !clock.Now().Equal(advanced) {
		t.Fatalf("expected clock to track the advance, got %v", clock.Now())
	}

	reset := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	clock.Set(reset)
	if !clock.Now().Equal(reset) {
		t.Fatalf("expected set to replace the current time, got %v", clock.Now())
	}
}

func TestClockNowFunc(t *testing.T) {
	clock := NewClock(time.Time{})
	now := clock.NowFunc()

	clock.Advance(time.Hour)
	if !now().Equal(clock.Now()) {
		t.Fatalf("expected injected function to follow the clock")
	}

	var nilClock *Clock
	if nilClock.NowFunc() == nil {
		t.Fatalf("expected a usable fallback for a nil clock")
	}
}
