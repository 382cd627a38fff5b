package dag

import (
	"context"
	"fmt"
)

// TaskFunc is a single unit of work. It receives a read-only view of the
// results produced by the tasks it declared as dependencies, and returns its
// own result or an error. A nil result from a successful task is valid.
type TaskFunc func(ctx context.Context, deps *ResultBag) (any, error)

// Graph is a named set of tasks and their declared dependencies. Build it
// with New and Add, then execute it with Run or Start. A Graph is intended
// to be constructed, validated and run once per operation.
type Graph struct {
	nodes map[string]*node
	// defects collects construction problems so that callers can wire the
	// whole graph fluently and fail fast on the first Run.
	defects []string
}

// node is a single vertex in the graph. It is un-exported to enforce
// interaction through task names, not direct struct manipulation.
type node struct {
	name string
	deps []string
	run  TaskFunc
	// dependents is derived during validation: every node that lists this
	// node as a dependency.
	dependents []*node
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// Add registers a task under a unique name with the names of the tasks it
// depends on. Problems such as duplicate names are recorded and surfaced by
// Validate, so wiring code stays linear.
func (g *Graph) Add(name string, deps []string, fn TaskFunc) {
	if name == "" {
		g.defects = append(g.defects, "task with empty name")
		return
	}
	if fn == nil {
		g.defects = append(g.defects, fmt.Sprintf("task %q has no function", name))
		return
	}
	if _, ok := g.nodes[name]; ok {
		g.defects = append(g.defects, fmt.Sprintf("duplicate task name %q", name))
		return
	}

	g.nodes[name] = &node{name: name, deps: append([]string(nil), deps...), run: fn}
}

// Validate checks the graph definition: every dependency must name a
// declared task, no task may depend on itself, and the dependency relation
// must be acyclic. It returns a *ConfigError describing the first problem
// found, which is distinct from any task execution error. Validate also
// populates the dependent links used by the scheduler.
func (g *Graph) Validate() error {
	if len(g.defects) != 0 {
		return &ConfigError{Reason: g.defects[0]}
	}

	for _, n := range g.nodes {
		n.dependents = nil
	}
	for _, n := range g.nodes {
		for _, dep := range n.deps {
			if dep == n.name {
				return &ConfigError{Reason: fmt.Sprintf("task %q depends on itself", n.name)}
			}
			parent, ok := g.nodes[dep]
			if !ok {
				return &ConfigError{Reason: fmt.Sprintf("task %q depends on undeclared task %q", n.name, dep)}
			}
			parent.dependents = append(parent.dependents, n)
		}
	}

	return g.detectCycles()
}

// detectCycles checks for circular dependencies in the graph using DFS.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		visiting[n.name] = true
		for _, dep := range n.deps {
			if visiting[dep] {
				return &ConfigError{Reason: fmt.Sprintf("cycle detected involving %q", dep)}
			}
			if !visited[dep] {
				if err := visit(g.nodes[dep]); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.name)
		visited[n.name] = true
		return nil
	}

	for _, n := range g.nodes {
		if !visited[n.name] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// ConfigError reports an invalid graph definition, as opposed to a failure
// of a task at execution time.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "invalid task graph: " + e.Reason
}
