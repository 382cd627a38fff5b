// Package app assembles the application: it builds the node and rate
// clients from configuration, wires them into the push workflow, and owns
// the logger every run inherits.
package app
