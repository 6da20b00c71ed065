// Package obsmetrics exposes the executor and worker pools' Prometheus
// counters/histograms. Registration is explicit (NewExecutor registers
// against a caller-supplied Registerer) rather than using the global
// default registry automatically, so tests and multiple in-process
// executors don't collide on metric names.
package obsmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// Executor bundles the task metrics InstrumentPool reports for every Spawn.
type Executor struct {
	TasksStarted   prometheus.Counter
	TasksSucceeded prometheus.Counter
	TasksFailed    prometheus.Counter
	TaskDuration   prometheus.Histogram
}

// NewExecutor creates and registers an Executor's metrics against reg. Pass
// prometheus.NewRegistry() in tests to avoid touching the global registry.
func NewExecutor(reg prometheus.Registerer) *Executor {
	m := &Executor{
		TasksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amadeus_exec_tasks_started_total",
			Help: "Tasks handed to the worker pool.",
		}),
		TasksSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amadeus_exec_tasks_succeeded_total",
			Help: "Tasks that completed without error.",
		}),
		TasksFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amadeus_exec_tasks_failed_total",
			Help: "Tasks that completed with an error.",
		}),
		TaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "amadeus_exec_task_duration_seconds",
			Help:    "Wall time spent running a single task end to end.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.TasksStarted, m.TasksSucceeded, m.TasksFailed, m.TaskDuration)
	return m
}

// ObserveDuration is a small helper for the common `defer
// m.ObserveDuration(time.Now())` pattern around a task's execution.
func (m *Executor) ObserveDuration(start time.Time) {
	m.TaskDuration.Observe(time.Since(start).Seconds())
}

// instrumentedPool wraps a workerpool.Pool so every Spawn is counted and
// timed without exec or its callers needing to know metrics exist.
type instrumentedPool struct {
	workerpool.Pool
	metrics *Executor
}

// InstrumentPool wraps pool so every Spawn call is reflected in m.
func InstrumentPool(pool workerpool.Pool, m *Executor) workerpool.Pool {
	return &instrumentedPool{Pool: pool, metrics: m}
}

func (p *instrumentedPool) Spawn(ctx context.Context, work func(context.Context) (any, error)) (<-chan workerpool.Result, error) {
	p.metrics.TasksStarted.Inc()
	start := time.Now()
	resultCh, err := p.Pool.Spawn(ctx, work)
	if err != nil {
		p.metrics.TasksFailed.Inc()
		return nil, err
	}

	wrapped := make(chan workerpool.Result, 1)
	go func() {
		res := <-resultCh
		p.metrics.ObserveDuration(start)
		if res.Err != nil {
			p.metrics.TasksFailed.Inc()
		} else {
			p.metrics.TasksSucceeded.Inc()
		}
		wrapped <- res
		close(wrapped)
	}()
	return wrapped, nil
}
