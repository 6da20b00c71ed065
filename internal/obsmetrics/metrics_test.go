package obsmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/constellation-rs/amadeus-go/pkg/workerpool/localpool"
)

func TestInstrumentPoolCountsSuccessAndFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewExecutor(reg)
	pool := InstrumentPool(localpool.New(), m)

	ch, err := pool.Spawn(context.Background(), func(context.Context) (any, error) { return 1, nil })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-ch

	ch, err = pool.Spawn(context.Background(), func(context.Context) (any, error) { return nil, errors.New("boom") })
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	<-ch

	if got := testutil.ToFloat64(m.TasksStarted); got != 2 {
		t.Fatalf("got TasksStarted=%v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TasksSucceeded); got != 1 {
		t.Fatalf("got TasksSucceeded=%v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TasksFailed); got != 1 {
		t.Fatalf("got TasksFailed=%v, want 1", got)
	}
}

func TestNewExecutorRegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewExecutor(reg)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("got %d metric families registered, want 4", len(families))
	}
}
