package clock

import (
	"testing"
	"time"
)

func TestDue(t *testing.T) {
	c := New(500)
	t0 := time.Unix(0, 0)

	if n := c.Due(t0); n != 0 {
		t.Fatalf("first call must start the clock:\nwant: 0\nhave: %d", n)
	}

	tests := []struct {
		at   time.Duration
		want int
	}{
		{1 * time.Millisecond, 0},
		{2 * time.Millisecond, 1},
		{5 * time.Millisecond, 1},
		{6 * time.Millisecond, 1},
		{26 * time.Millisecond, 10},
	}

	for _, tt := range tests {
		if n := c.Due(t0.Add(tt.at)); n != tt.want {
			t.Fatalf("cycles at %v mismatch:\nwant: %d\nhave: %d", tt.at, tt.want, n)
		}
	}
}

func TestDueAccumulates(t *testing.T) {
	c := New(60)
	t0 := time.Unix(0, 0)
	c.Start(t0)

	total := 0
	for i := 1; i <= 1000; i++ {
		total += c.Due(t0.Add(time.Duration(i) * time.Millisecond))
	}

	if total != 60 {
		t.Fatalf("cycles in one second mismatch:\nwant: 60\nhave: %d", total)
	}
}

func TestDueCapsLag(t *testing.T) {
	c := New(1000)
	t0 := time.Unix(0, 0)
	c.Start(t0)

	n := c.Due(t0.Add(5 * time.Second))
	want := int(MaxLag / c.Period())
	if n != want {
		t.Fatalf("lag not capped:\nwant: %d\nhave: %d", want, n)
	}
}

func TestDueBackwards(t *testing.T) {
	c := New(100)
	t0 := time.Unix(10, 0)
	c.Start(t0)

	if n := c.Due(t0.Add(-time.Second)); n != 0 {
		t.Fatalf("time going backwards produced %d cycles", n)
	}
}

func TestNewClampsFrequency(t *testing.T) {
	c := New(0)
	if c.Hz() != 1 || c.Period() != time.Second {
		t.Fatalf("unexpected clock: hz=%d period=%v", c.Hz(), c.Period())
	}
}
