// Package dag runs a static, named set of interdependent tasks to completion
// or to first failure. Tasks declare their dependencies by name; the engine
// derives the execution order from those declarations alone, running every
// ready task concurrently and short-circuiting on the first error.
//
// A Graph is built once and validated before its first run. Each run gets a
// fresh execution state and an append-once ResultBag that only the engine
// writes to; task functions see a read-only view of their dependencies'
// results.
package dag
