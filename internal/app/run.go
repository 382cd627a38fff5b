package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/miketwenty1/balanceofsatoshis/internal/ctxlog"
	"github.com/miketwenty1/balanceofsatoshis/internal/push"
)

// Run executes one push and prints its result. Every log line of the run
// carries a fresh correlation id so concurrent or retried pushes can be
// told apart in aggregated logs.
func (a *App) Run(ctx context.Context, req *push.Request) error {
	logger := a.logger.With("push_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Push run started.")

	result, err := a.workflow.Push(ctx, req)
	if err != nil {
		return err
	}
	logger.Debug("Push run finished.")

	return a.writeResult(result)
}

// writeResult renders the push result to the output writer.
func (a *App) writeResult(result *push.Result) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	_, err = fmt.Fprintln(a.outW, string(encoded))
	return err
}
