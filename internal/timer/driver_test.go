package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// countingTicker records how often it was ticked.
type countingTicker struct {
	mu    sync.Mutex
	count int
}

func (c *countingTicker) Tick() []domain.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return nil
}

func (c *countingTicker) ticks() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func TestDriverTicks(t *testing.T) {
	target := &countingTicker{}
	d := NewDriver(target, logger.New(logger.LevelOff, nil), WithTickInterval(10*time.Millisecond))

	d.Start(context.Background())
	defer d.Stop()

	if !d.Running() {
		t.Fatal("expected driver to be running")
	}

	deadline := time.Now().Add(time.Second)
	for target.ticks() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least 3 ticks, got %d", target.ticks())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDriverStopHaltsTicks(t *testing.T) {
	target := &countingTicker{}
	d := NewDriver(target, logger.New(logger.LevelOff, nil), WithTickInterval(10*time.Millisecond))

	d.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	d.Stop()
	d.Stop() // idempotent

	if d.Running() {
		t.Fatal("expected driver to be stopped")
	}

	// Allow an in-flight tick to land, then make sure nothing follows it.
	time.Sleep(20 * time.Millisecond)
	after := target.ticks()
	time.Sleep(60 * time.Millisecond)
	if got := target.ticks(); got != after {
		t.Fatalf("ticks continued after Stop: %d -> %d", after, got)
	}
}

func TestDriverRestart(t *testing.T) {
	target := &countingTicker{}
	d := NewDriver(target, logger.New(logger.LevelOff, nil), WithTickInterval(10*time.Millisecond))

	d.Start(context.Background())
	d.Stop()
	d.Start(context.Background())
	defer d.Stop()

	if !d.Running() {
		t.Fatal("expected driver to run again after restart")
	}

	// The first loop winding down must not mark the second one stopped.
	time.Sleep(30 * time.Millisecond)
	if !d.Running() {
		t.Fatal("restarted driver reported stopped")
	}
}

func TestDriverStopsWithContext(t *testing.T) {
	target := &countingTicker{}
	d := NewDriver(target, logger.New(logger.LevelOff, nil), WithTickInterval(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()
	defer d.Stop()

	time.Sleep(20 * time.Millisecond)
	after := target.ticks()
	time.Sleep(50 * time.Millisecond)
	if got := target.ticks(); got != after {
		t.Fatalf("ticks continued after context cancel: %d -> %d", after, got)
	}
	if d.Running() {
		t.Fatal("driver still reports running after its context was cancelled")
	}

	d.Start(context.Background())
	if !d.Running() {
		t.Fatal("expected Start to work again after context cancel")
	}
	deadline := time.Now().Add(time.Second)
	for target.ticks() == after {
		if time.Now().After(deadline) {
			t.Fatal("no ticks after restarting a cancelled driver")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
