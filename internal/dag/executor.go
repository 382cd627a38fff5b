package dag

import (
	"context"
	"fmt"
	"sync"

	"github.com/miketwenty1/balanceofsatoshis/internal/ctxlog"
)

// Outcome is the terminal state of a graph run delivered by Start: the final
// task's value, or the run's first error.
type Outcome struct {
	Value any
	Err   error
}

// Run validates the graph and executes it to completion or first failure.
// Independent tasks run concurrently. On success it returns the result of
// the designated final task; on failure it returns the first error recorded
// in completion order, after every in-flight task has drained. Each call
// builds a fresh execution state, but a Graph is intended for a single run.
func (g *Graph) Run(ctx context.Context, final string) (any, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if _, ok := g.nodes[final]; !ok {
		return nil, &ConfigError{Reason: fmt.Sprintf("final task %q is not declared", final)}
	}

	e := &execution{
		graph:    g,
		results:  newResultBag(),
		depCount: make(map[string]int, len(g.nodes)),
		started:  make(map[string]bool, len(g.nodes)),
		done:     make(chan struct{}),
	}
	e.start(ctx)
	<-e.done

	if e.firstErr != nil {
		return nil, e.firstErr
	}
	v, _ := e.results.Value(final)
	return v, nil
}

// Start runs the graph in the background and returns a single-shot channel
// carrying the run's Outcome. It is the future-shaped twin of Run: one
// result, one error, never both, never twice.
func (g *Graph) Start(ctx context.Context, final string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		v, err := g.Run(ctx, final)
		out <- Outcome{Value: v, Err: err}
		close(out)
	}()
	return out
}

// execution is the per-run transient state. It is created at run start and
// discarded at run end, never reused.
type execution struct {
	graph   *Graph
	results *ResultBag

	mu        sync.Mutex
	depCount  map[string]int
	started   map[string]bool
	inFlight  int
	completed int
	firstErr  error
	finished  bool
	done      chan struct{}
}

// start seeds the run with every task whose dependency set is empty.
func (e *execution) start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.graph.nodes) == 0 {
		e.finish()
		return
	}

	for _, n := range e.graph.nodes {
		e.depCount[n.name] = len(n.deps)
	}
	for _, n := range e.graph.nodes {
		if e.depCount[n.name] == 0 {
			logger.Debug("Scheduling root task.", "task", n.name)
			e.launch(ctx, n)
		}
	}
}

// launch marks a task as started and runs it on its own goroutine so that a
// task blocking on I/O never stalls an unrelated ready task. Callers must
// hold e.mu.
func (e *execution) launch(ctx context.Context, n *node) {
	e.started[n.name] = true
	e.inFlight++

	go func() {
		logger := ctxlog.FromContext(ctx).With("task", n.name)
		logger.Debug("Task started.")
		v, err := n.run(ctx, e.results)
		if err != nil {
			logger.Debug("Task failed.", "error", err)
		} else {
			logger.Debug("Task completed.")
		}
		e.complete(ctx, n, v, err)
	}()
}

// complete is the single point where task outcomes are recorded. It latches
// the first error chronologically, stops scheduling once an error is
// latched, unlocks dependents whose dependency sets are now satisfied, and
// closes the run when nothing remains in flight.
func (e *execution) complete(ctx context.Context, n *node, v any, err error) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.inFlight--

	// Once a terminal error is latched, later outcomes are discarded and
	// the run ends as soon as the in-flight tasks drain.
	if e.firstErr != nil {
		if e.inFlight == 0 {
			e.finish()
		}
		return
	}

	if err != nil {
		logger.Debug("Latching terminal error, no further tasks will start.", "task", n.name)
		e.firstErr = err
		if e.inFlight == 0 {
			e.finish()
		}
		return
	}

	e.results.put(n.name, v)
	e.completed++
	if e.completed == len(e.graph.nodes) {
		e.finish()
		return
	}

	for _, dependent := range n.dependents {
		e.depCount[dependent.name]--
		if e.depCount[dependent.name] == 0 && !e.started[dependent.name] {
			logger.Debug("Unlocking dependent task.", "task", dependent.name)
			e.launch(ctx, dependent)
		}
	}
}

// finish closes the done channel exactly once. Callers must hold e.mu.
func (e *execution) finish() {
	if e.finished {
		return
	}
	e.finished = true
	close(e.done)
}
