// Package cli translates command-line arguments into a loaded configuration
// and a push request. It owns usage output and argument validation errors;
// workflow-level validation stays in the push package.
package cli
