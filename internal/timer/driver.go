package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ottostep/internal/domain"
	"github.com/hammamikhairi/ottostep/internal/logger"
)

// Ticker is advanced once per driver interval. *Registry satisfies it.
type Ticker interface {
	Tick() []domain.Timer
}

// DriverOption configures the driver.
type DriverOption func(*Driver)

// WithTickInterval sets how often the driver ticks.
func WithTickInterval(d time.Duration) DriverOption {
	return func(dr *Driver) {
		dr.tickInterval = d
	}
}

// Driver is the single periodic clock of a session. It calls Tick on a
// fixed interval until stopped. Stop and Start may be called repeatedly.
type Driver struct {
	target       Ticker
	log          *logger.Logger
	tickInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	gen     uint64
	ticks   uint64
}

// NewDriver creates a stopped driver for target.
func NewDriver(target Ticker, log *logger.Logger, opts ...DriverOption) *Driver {
	d := &Driver{
		target:       target,
		log:          log,
		tickInterval: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start begins ticking in the background. Non-blocking.
func (d *Driver) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		d.log.Warn("timer driver already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running = true
	d.gen++

	go d.loop(childCtx, d.gen)

	d.log.Info("timer driver started (tick=%s)", d.tickInterval)
}

// Stop halts ticking. A tick already in flight may still finish.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	d.cancel()
	d.running = false
	d.log.Info("timer driver stopped after %d ticks", d.ticks)
}

// Running reports whether the driver is ticking.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// loop is the main tick loop. gen identifies the Start call that owns it.
func (d *Driver) loop(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()
	defer d.exited(gen)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both cases can be ready at once; a cancelled driver must not tick.
			if ctx.Err() != nil {
				return
			}
			d.mu.Lock()
			d.ticks++
			d.mu.Unlock()
			d.target.Tick()
		}
	}
}

// exited marks the driver stopped when its loop ends because the parent
// context was cancelled. A loop from an earlier Start leaves state alone.
func (d *Driver) exited(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running || d.gen != gen {
		return
	}
	d.cancel()
	d.running = false
	d.log.Info("timer driver stopped by context after %d ticks", d.ticks)
}
