// Package keepalive pings the backend on a timer so free-tier hosting
// doesn't put it to sleep. Failures are never surfaced to the user and
// never block any other operation.
package keepalive

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pinger is the slice of the backend the poller needs.
type Pinger interface {
	Ping(ctx context.Context, path string) error
}

// Paths tried in order until one succeeds.
var defaultPaths = []string{"/keep-alive/ping", "/keep-alive", "/keep-alive/health"}

const (
	defaultInterval    = 9 * time.Minute
	aggressiveInterval = time.Minute
	pingTimeout        = 10 * time.Second
	maxErrors          = 5
)

// Status is a snapshot of the poller's state for debugging readouts.
type Status struct {
	LastPing   time.Time
	ErrorCount int
	Running    bool
	Aggressive bool
}

// Poller runs the keep-alive loop on its own goroutine.
type Poller struct {
	pinger   Pinger
	stop     context.CancelFunc
	done     chan struct{}
	paths    []string
	interval time.Duration

	mu         sync.Mutex
	lastPing   time.Time
	errorCount int
	running    bool
	aggressive bool
}

// NewPoller creates a poller against the given backend. A zero
// interval uses the 9-minute default.
func NewPoller(pinger Pinger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		pinger:   pinger,
		paths:    defaultPaths,
		interval: interval,
	}
}

// Start launches the loop. It pings immediately, then on every tick.
// Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, p.stop = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true
	p.mu.Unlock()

	slog.Debug("keep-alive started", "interval", p.interval)
	go p.loop(ctx)
}

// Stop halts the loop and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	stop, done := p.stop, p.done
	p.mu.Unlock()

	stop()
	<-done

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

// Status returns a snapshot of the poller state.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		LastPing:   p.lastPing,
		ErrorCount: p.errorCount,
		Running:    p.running,
		Aggressive: p.aggressive,
	}
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	p.ping(ctx)
	timer := time.NewTimer(p.currentInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.ping(ctx)
			timer.Reset(p.currentInterval())
		}
	}
}

func (p *Poller) currentInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.aggressive {
		return aggressiveInterval
	}
	return p.interval
}

// ping tries each path in order until one succeeds. All failures stay
// internal: a counter for the aggressive-mode switch and a debug log.
func (p *Poller) ping(ctx context.Context) {
	for _, path := range p.paths {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := p.pinger.Ping(pingCtx, path)
		cancel()

		if err == nil {
			p.mu.Lock()
			p.lastPing = time.Now()
			p.errorCount = 0
			if p.aggressive {
				p.aggressive = false
				slog.Debug("keep-alive back to normal interval")
			}
			p.mu.Unlock()
			return
		}
		slog.Debug("keep-alive ping failed", "path", path, "error", err)
	}

	p.mu.Lock()
	p.errorCount++
	if p.errorCount >= maxErrors && !p.aggressive {
		p.aggressive = true
		slog.Debug("keep-alive switching to aggressive interval", "errors", p.errorCount)
	}
	p.mu.Unlock()
}
