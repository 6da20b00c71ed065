// Package threadpool is a goroutine-backed workerpool.Pool, adapted from
// the advanced worker pool pattern: a fixed set of long-lived worker
// goroutines pulling from a shared job queue, with periodic progress
// reporting and atomic submitted/completed/failed counters.
package threadpool

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline/errs"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// ProgressReporter is called periodically with (completed, submitted)
// counts while the pool has work in flight.
type ProgressReporter func(completed, submitted int64)

// Config tunes a ThreadPool. Zero values fall back to sensible defaults,
// matching the original worker pool's "apply defaults in the constructor"
// convention.
type Config struct {
	WorkerCount      int
	BufferSize       int
	ShutdownTimeout  time.Duration
	ProgressReporter ProgressReporter

	// EnqueueRetries bounds how many times Spawn retries queuing a job
	// against a full buffer before giving up, backing off exponentially
	// between attempts.
	EnqueueRetries uint64
}

func (c Config) withDefaults() Config {
	if c.WorkerCount <= 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.BufferSize <= 0 {
		c.BufferSize = c.WorkerCount * 2
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
	if c.EnqueueRetries == 0 {
		c.EnqueueRetries = 3
	}
	return c
}

type job struct {
	ctx      context.Context
	work     func(context.Context) (any, error)
	resultCh chan workerpool.Result
}

// ThreadPool is a fixed-size goroutine pool implementing workerpool.Pool.
type ThreadPool struct {
	config Config
	logger *zap.Logger

	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	submitted int64
	completed int64
	failed    int64

	mu       sync.RWMutex
	started  bool
	shutdown bool
}

// New creates a ThreadPool. Call Start before Spawn.
func New(config Config, logger *zap.Logger) *ThreadPool {
	config = config.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ThreadPool{
		config: config,
		logger: logger.With(zap.String("component", "threadpool")),
		jobs:   make(chan job, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start spawns the worker goroutines and the progress-reporting goroutine.
func (p *ThreadPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return errs.Pool("start", fmt.Errorf("pool already started"))
	}
	if p.shutdown {
		return errs.Pool("start", fmt.Errorf("pool has been shut down"))
	}
	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	if p.config.ProgressReporter != nil {
		p.wg.Add(1)
		go p.reportProgress()
	}
	p.started = true
	return nil
}

// Parallelism reports the configured worker count.
func (p *ThreadPool) Parallelism() int { return p.config.WorkerCount }

// Spawn queues work for a worker goroutine and returns a channel that
// receives exactly one Result. A full job queue is treated as transient:
// Spawn retries the enqueue with exponential backoff, bounded by
// EnqueueRetries, before reporting failure.
func (p *ThreadPool) Spawn(ctx context.Context, work func(context.Context) (any, error)) (<-chan workerpool.Result, error) {
	p.mu.RLock()
	started := p.started
	shutdown := p.shutdown
	p.mu.RUnlock()
	if !started {
		return nil, errs.Pool("spawn", fmt.Errorf("pool not started"))
	}
	if shutdown {
		return nil, errs.Pool("spawn", fmt.Errorf("pool is shutting down"))
	}

	resultCh := make(chan workerpool.Result, 1)
	j := job{ctx: ctx, work: work, resultCh: resultCh}

	enqueue := func() error {
		select {
		case p.jobs <- j:
			return nil
		case <-p.ctx.Done():
			return backoff.Permanent(fmt.Errorf("pool context cancelled"))
		case <-ctx.Done():
			return backoff.Permanent(ctx.Err())
		default:
			return fmt.Errorf("job queue full")
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.config.EnqueueRetries), ctx)
	if err := backoff.Retry(enqueue, policy); err != nil {
		return nil, errs.Pool("spawn", err)
	}
	atomic.AddInt64(&p.submitted, 1)
	return resultCh, nil
}

// Shutdown stops accepting work and waits for in-flight jobs to finish,
// forcing cancellation if ShutdownTimeout elapses first.
func (p *ThreadPool) Shutdown() error {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil
	}
	if !p.started {
		p.mu.Unlock()
		return errs.Pool("shutdown", fmt.Errorf("pool not started"))
	}
	p.shutdown = true
	p.mu.Unlock()

	close(p.jobs)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.config.ShutdownTimeout):
		p.logger.Warn("shutdown timeout exceeded, cancelling in-flight work")
		p.cancel()
		p.wg.Wait()
	}
	return nil
}

// Stats reports current submitted/completed/failed counters.
func (p *ThreadPool) Stats() (submitted, completed, failed int64) {
	return atomic.LoadInt64(&p.submitted), atomic.LoadInt64(&p.completed), atomic.LoadInt64(&p.failed)
}

func (p *ThreadPool) worker(id int) {
	defer p.wg.Done()
	for j := range p.jobs {
		value, err := workerpool.RunGuarded(j.ctx, j.work)
		if err != nil {
			atomic.AddInt64(&p.failed, 1)
		}
		atomic.AddInt64(&p.completed, 1)
		select {
		case j.resultCh <- workerpool.Result{Value: value, Err: err}:
		case <-p.ctx.Done():
		}
		close(j.resultCh)
	}
}

func (p *ThreadPool) reportProgress() {
	defer p.wg.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.config.ProgressReporter(atomic.LoadInt64(&p.completed), atomic.LoadInt64(&p.submitted))
		case <-p.ctx.Done():
			return
		}
	}
}
