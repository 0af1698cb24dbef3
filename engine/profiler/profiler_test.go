package profiler

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestProfiler(clock *fakeClock, interval time.Duration) *Profiler {
	p := NewProfiler(WithInterval(interval), WithQuiet(true))
	p.now = clock.now
	p.lastTime = clock.now()
	return p
}

func TestTickReportsAfterInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := newTestProfiler(clock, time.Second)

	for i := 0; i < 59; i++ {
		clock.advance(time.Second / 60)
		if _, ok := p.Tick(); ok {
			t.Fatalf("reported early at frame %d", i+1)
		}
	}
	clock.advance(time.Second / 60)
	s, ok := p.Tick()
	if !ok {
		t.Fatal("expected a report after one second")
	}
	if math.Abs(s.FPS-60) > 0.5 {
		t.Errorf("FPS = %.2f, want ~60", s.FPS)
	}
	if s.SysMB <= 0 {
		t.Errorf("SysMB = %.2f, want > 0", s.SysMB)
	}
}

func TestTickResetsWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(clock, 100*time.Millisecond)

	clock.advance(200 * time.Millisecond)
	if _, ok := p.Tick(); !ok {
		t.Fatal("first window should close")
	}
	clock.advance(50 * time.Millisecond)
	if _, ok := p.Tick(); ok {
		t.Fatal("second window closed too early")
	}
	clock.advance(50 * time.Millisecond)
	s, ok := p.Tick()
	if !ok {
		t.Fatal("second window should close")
	}
	if math.Abs(s.FPS-20) > 0.01 {
		t.Errorf("FPS = %.2f, want 20 (2 frames / 100ms)", s.FPS)
	}
}

func TestTickWithoutElapsedTime(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newTestProfiler(clock, 0)
	if _, ok := p.Tick(); ok {
		t.Fatal("zero elapsed time must not report")
	}
}
