// Package workerpool implements the adaptive bounded-queue executor spec
// §4.3 calls for: goroutines reading from a buffered channel stand in for
// OS threads, adaptive sizing runs in a monitor goroutine, and submission
// falls back to running inline on the caller when the pool is saturated —
// the same caller-runs backpressure the teacher's thread pool would get
// from java.util.concurrent.ThreadPoolExecutor.CallerRunsPolicy.
package workerpool

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds every runtime-tunable from spec §4.3. Zero values fall back
// to the documented defaults.
type Config struct {
	CoreWorkers     int
	MaxWorkers      int
	QueueCapacity   int
	ResizeThreshold int
	IdleTimeout     time.Duration
	MonitorInterval time.Duration
	Logger          *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.CoreWorkers <= 0 {
		c.CoreWorkers = runtime.NumCPU()
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = c.CoreWorkers * 4
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 200
	}
	if c.ResizeThreshold <= 0 {
		c.ResizeThreshold = 50
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// Pool is the bounded-queue adaptive worker pool. Workers above the core
// floor self-terminate after sitting idle for IdleTimeout; the monitor
// goroutine grows or shrinks the core/max targets based on queue depth.
type Pool struct {
	cfg   Config
	queue chan func()

	currentCore atomic.Int64
	currentMax  atomic.Int64
	liveWorkers atomic.Int64
	nextWorker  atomic.Int64

	shutdownOnce sync.Once
	stopMonitor  chan struct{}
	wg           sync.WaitGroup
	monitorDone  chan struct{}
}

// New builds a Pool and starts its coreWorkers floor plus the monitor
// loop. Callers must call Shutdown to release the monitor goroutine.
func New(cfg Config) *Pool {
	cfg = cfg.withDefaults()

	p := &Pool{
		cfg:         cfg,
		queue:       make(chan func(), cfg.QueueCapacity),
		stopMonitor: make(chan struct{}),
		monitorDone: make(chan struct{}),
	}
	p.currentCore.Store(int64(cfg.CoreWorkers))
	p.currentMax.Store(int64(cfg.MaxWorkers))

	for i := 0; i < cfg.CoreWorkers; i++ {
		p.startWorker(true)
	}

	go p.monitorLoop()
	return p
}

// Submit accepts a unit of work and returns a handle for its completion.
// If the queue is full and the pool is below its current max, a transient
// worker is spawned to drain it; if the pool is already at max, work runs
// inline on the calling goroutine (caller-runs backpressure).
func (p *Pool) Submit(work func()) <-chan struct{} {
	done := make(chan struct{})
	wrapped := func() {
		defer close(done)
		work()
	}

	select {
	case <-p.stopMonitor:
		wrapped()
		return done
	default:
	}

	select {
	case p.queue <- wrapped:
		return done
	default:
	}

	if p.liveWorkers.Load() < p.currentMax.Load() {
		p.startWorker(false)
		select {
		case p.queue <- wrapped:
			return done
		default:
			// Lost the race for the worker just spawned; fall through to
			// caller-runs rather than block the submitting goroutine.
		}
	}

	wrapped()
	return done
}

// ActiveWorkers returns the current live goroutine count.
func (p *Pool) ActiveWorkers() int { return int(p.liveWorkers.Load()) }

// QueueDepth returns the number of queued-but-not-yet-running work items.
func (p *Pool) QueueDepth() int { return len(p.queue) }

// Shutdown stops the monitor, tells every worker to run what is still
// queued and exit, and waits up to 30s for them, then returns. Work
// submitted after Shutdown runs inline on the caller. Idempotent.
func (p *Pool) Shutdown() {
	p.shutdownOnce.Do(func() {
		close(p.stopMonitor)
		<-p.monitorDone

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(30 * time.Second):
			p.cfg.Logger.Warn("workerpool shutdown timed out waiting for in-flight work")
		}
	})
}

func (p *Pool) startWorker(core bool) {
	p.liveWorkers.Add(1)
	p.wg.Add(1)
	id := p.nextWorker.Add(1)

	go func() {
		defer p.wg.Done()
		defer p.liveWorkers.Add(-1)
		p.runWorker(id, core)
	}()
}

func (p *Pool) runWorker(id int64, core bool) {
	idle := time.NewTimer(p.cfg.IdleTimeout)
	defer idle.Stop()

	run := func(work func()) {
		defer func() {
			if r := recover(); r != nil {
				p.cfg.Logger.Error("file-task-thread panic recovered", "worker", id, "panic", r)
			}
		}()
		work()
	}

	for {
		select {
		case work, ok := <-p.queue:
			if !ok {
				return
			}
			idle.Reset(p.cfg.IdleTimeout)
			run(work)
		case <-p.stopMonitor:
			// Shutdown: run whatever is still queued, then exit.
			for {
				select {
				case work := <-p.queue:
					run(work)
				default:
					return
				}
			}
		case <-idle.C:
			if !core && p.liveWorkers.Load() > p.currentCore.Load() {
				return
			}
			idle.Reset(p.cfg.IdleTimeout)
		}
	}
}

func (p *Pool) monitorLoop() {
	defer close(p.monitorDone)
	ticker := time.NewTicker(p.cfg.MonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopMonitor:
			return
		case <-ticker.C:
			p.adjustPoolSize()
		}
	}
}

func (p *Pool) adjustPoolSize() {
	depth := p.QueueDepth()
	maxWorkers := int64(p.cfg.MaxWorkers)
	coreWorkers := int64(p.cfg.CoreWorkers)

	switch {
	case depth > p.cfg.ResizeThreshold && p.currentMax.Load() < maxWorkers:
		newMax := min64(maxWorkers, p.currentMax.Load()+2)
		p.currentMax.Store(newMax)
		p.currentCore.Store(newMax / 2)
		p.cfg.Logger.Debug("workerpool scaled up", "newMax", newMax, "queueDepth", depth)
	case depth < p.cfg.ResizeThreshold/2 && p.currentCore.Load() > coreWorkers:
		newCore := max64(coreWorkers, p.currentCore.Load()-1)
		p.currentCore.Store(newCore)
		p.currentMax.Store(newCore * 2)
		p.cfg.Logger.Debug("workerpool scaled down", "newCore", newCore, "queueDepth", depth)
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Wait blocks until ctx is done or the pool's queue drains to zero. It does
// not track work a worker has already taken off the queue, so such work may
// still be running when Wait returns.
func (p *Pool) Wait(ctx context.Context) error {
	for {
		if p.QueueDepth() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}
