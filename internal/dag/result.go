package dag

import "sync"

// ResultBag is the append-once store of completed task results. The engine
// is its only writer: each task's value is recorded exactly once, under
// lock, before any dependent task starts. Task functions receive the bag as
// a read-only view of their dependencies.
type ResultBag struct {
	mu     sync.RWMutex
	values map[string]any
}

func newResultBag() *ResultBag {
	return &ResultBag{values: make(map[string]any)}
}

// Value returns the recorded result for a task name and whether the task
// has completed successfully.
func (b *ResultBag) Value(name string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[name]
	return v, ok
}

// put records a task result. Entries are immutable once written; a second
// write for the same name is ignored, preserving the first.
func (b *ResultBag) put(name string, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.values[name]; ok {
		return
	}
	b.values[name] = v
}

// Dep returns the typed result of a dependency from the bag. It returns the
// zero value when the task has no recorded result or the result holds a
// different type, which keeps optional upstream results (nil-yielding
// tasks) ergonomic for consumers.
func Dep[T any](bag *ResultBag, name string) T {
	var zero T
	v, ok := bag.Value(name)
	if !ok || v == nil {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}
