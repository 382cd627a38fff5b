// Package push coordinates a single outbound payment push: it validates the
// request, discovers channel liquidity with the destination and optional
// routing peers, converts the amount expression into tokens using live
// rates, executes the payment, and reconciles the outbound peer's liquidity
// afterwards. The steps are declared as a dependency graph and scheduled by
// the dag engine; independent steps run concurrently and the first failure
// short-circuits the run.
package push

import (
	"context"

	"github.com/miketwenty1/balanceofsatoshis/internal/amount"
	"github.com/miketwenty1/balanceofsatoshis/internal/ctxlog"
	"github.com/miketwenty1/balanceofsatoshis/internal/dag"
	"github.com/miketwenty1/balanceofsatoshis/internal/fiat"
	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
)

// ChannelSource lists the node's open channels.
type ChannelSource interface {
	GetChannels(ctx context.Context) ([]lightning.Channel, error)
}

// NetworkSource reports which network the node settles on, e.g. "btc".
type NetworkSource interface {
	GetNetwork(ctx context.Context) (string, error)
}

// KeyFinder resolves a free-form peer query to a public key using channel
// data. Not-found and ambiguous failures must surface unchanged.
type KeyFinder interface {
	FindKey(ctx context.Context, channels []lightning.Channel, query string) (string, error)
}

// RateSource returns a rate for every requested symbol or fails.
type RateSource interface {
	GetRates(ctx context.Context, symbols []string) ([]fiat.Rate, error)
}

// Prober executes the payment through probe-based routing.
type Prober interface {
	PushPayment(ctx context.Context, req *ProbeRequest) (*lightning.Payment, error)
}

// LiquiditySource re-queries a peer's liquidity after a settlement.
type LiquiditySource interface {
	GetPeerLiquidity(ctx context.Context, publicKey, settledID string) (*lightning.PeerLiquidity, error)
}

// Workflow binds the external collaborators a push run consumes.
type Workflow struct {
	Channels  ChannelSource
	Finder    KeyFinder
	Liquidity LiquiditySource
	Network   NetworkSource
	Prober    Prober
	Rates     RateSource
}

// Task names. Dependencies reference these, so keep them in one place.
const (
	taskValidate     = "validate"
	taskGetChannels  = "getChannels"
	taskGetNetwork   = "getNetwork"
	taskGetFiatPrice = "getFiatPrice"
	taskGetInKey     = "getInKey"
	taskGetOutKey    = "getOutKey"
	taskFiatRates    = "fiatRates"
	taskParseAmount  = "parseAmount"
	taskPush         = "push"
	taskGetAdjusted  = "getAdjustedOutbound"
	taskLiquidity    = "liquidity"
	taskResult       = "result"
)

// Push runs the payment workflow to completion or first failure, returning
// either a Result or exactly one structured error.
func (w *Workflow) Push(ctx context.Context, req *Request) (*Result, error) {
	v, err := w.graph(ctx, req).Run(ctx, taskResult)
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// PushAsync is the future-shaped variant of Push over the same engine: the
// returned channel delivers a single Result-or-error outcome.
func (w *Workflow) PushAsync(ctx context.Context, req *Request) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		res, err := w.Push(ctx, req)
		out <- Outcome{Result: res, Err: err}
		close(out)
	}()
	return out
}

// Outcome is the terminal state of an asynchronous push.
type Outcome struct {
	Result *Result
	Err    error
}

// graph declares the workflow's tasks and their dependencies. Ordering is
// derived entirely from the declarations, not from layout here.
func (w *Workflow) graph(ctx context.Context, req *Request) *dag.Graph {
	logger := ctxlog.FromContext(ctx)
	g := dag.New()

	// Check arguments before anything touches the network.
	g.Add(taskValidate, nil, func(context.Context, *dag.ResultBag) (any, error) {
		return nil, validateRequest(req)
	})

	// Channel data, network identity and rates are independent fetches.
	g.Add(taskGetChannels, []string{taskValidate}, func(ctx context.Context, _ *dag.ResultBag) (any, error) {
		return w.Channels.GetChannels(ctx)
	})

	g.Add(taskGetNetwork, []string{taskValidate}, func(ctx context.Context, _ *dag.ResultBag) (any, error) {
		return w.Network.GetNetwork(ctx)
	})

	g.Add(taskGetFiatPrice, []string{taskValidate}, func(ctx context.Context, _ *dag.ResultBag) (any, error) {
		return w.Rates.GetRates(ctx, rateSymbols())
	})

	// Resolve the optional routing constraint peers once channels exist.
	g.Add(taskGetInKey, []string{taskGetChannels}, func(ctx context.Context, deps *dag.ResultBag) (any, error) {
		if len(req.InThrough) == 0 {
			return "", nil
		}
		channels := dag.Dep[[]lightning.Channel](deps, taskGetChannels)
		return w.Finder.FindKey(ctx, channels, req.InThrough[0])
	})

	g.Add(taskGetOutKey, []string{taskGetChannels}, func(ctx context.Context, deps *dag.ResultBag) (any, error) {
		if len(req.OutThrough) == 0 {
			return "", nil
		}
		channels := dag.Dep[[]lightning.Channel](deps, taskGetChannels)
		return w.Finder.FindKey(ctx, channels, req.OutThrough[0])
	})

	// Derive tokens-per-fiat-unit for the node's network.
	g.Add(taskFiatRates, []string{taskGetFiatPrice, taskGetNetwork}, func(_ context.Context, deps *dag.ResultBag) (any, error) {
		return fiatUnits(
			dag.Dep[string](deps, taskGetNetwork),
			dag.Dep[[]fiat.Rate](deps, taskGetFiatPrice),
		)
	})

	// Evaluate the amount expression against rates and liquidity.
	g.Add(taskParseAmount, []string{taskFiatRates, taskGetChannels, taskGetNetwork, taskGetOutKey}, func(_ context.Context, deps *dag.ResultBag) (any, error) {
		variables := amountVariables(
			dag.Dep[[]lightning.Channel](deps, taskGetChannels),
			req.Destination,
			dag.Dep[string](deps, taskGetOutKey),
			dag.Dep[[]fiatUnit](deps, taskFiatRates),
		)

		tokens, err := amount.Evaluate(req.Amount, variables)
		if err != nil {
			return nil, &Error{Code: 400, Name: ErrFailedToParseAmount.Name, Err: err}
		}
		return tokens, nil
	})

	// Push the amount to the destination.
	g.Add(taskPush, []string{taskGetInKey, taskGetOutKey, taskParseAmount}, func(ctx context.Context, deps *dag.ResultBag) (any, error) {
		tokens := dag.Dep[int64](deps, taskParseAmount)
		if tokens < minTokens {
			return nil, ErrExpectedNonZero
		}

		logger.Info("Pushing payment.",
			"paying", lightning.FormatTokens(tokens),
			"to", req.Destination,
		)

		if req.IsDryRun {
			return nil, ErrDryRun
		}

		payment, err := w.Prober.PushPayment(ctx, &ProbeRequest{
			Destination: req.Destination,
			InThrough:   dag.Dep[string](deps, taskGetInKey),
			MaxFee:      *req.MaxFee,
			Message:     req.Message,
			Messages:    quizRecords(req.QuizAnswers),
			OutThrough:  dag.Dep[string](deps, taskGetOutKey),
			Tokens:      tokens,
		})
		if err != nil {
			return nil, err
		}
		if payment.Preimage == "" {
			return nil, ErrNoSettlement
		}
		return payment, nil
	})

	// Re-query the outbound peer's liquidity after the push settles. No
	// outbound constraint is a valid, result-less outcome.
	g.Add(taskGetAdjusted, []string{taskPush, taskGetOutKey}, func(ctx context.Context, deps *dag.ResultBag) (any, error) {
		if len(req.OutThrough) == 0 {
			return nil, nil
		}

		payment := dag.Dep[*lightning.Payment](deps, taskPush)
		peer := dag.Dep[string](deps, taskGetOutKey)
		if len(payment.Relays) != 0 {
			peer = payment.Relays[0]
		}
		return w.Liquidity.GetPeerLiquidity(ctx, peer, payment.ID)
	})

	// Emit the liquidity delta report for observability.
	g.Add(taskLiquidity, []string{taskGetAdjusted, taskGetOutKey, taskPush}, func(_ context.Context, deps *dag.ResultBag) (any, error) {
		adjusted := dag.Dep[*lightning.PeerLiquidity](deps, taskGetAdjusted)
		if adjusted == nil {
			return nil, nil
		}

		payment := dag.Dep[*lightning.Payment](deps, taskPush)
		peer := dag.Dep[string](deps, taskGetOutKey)
		if len(payment.Relays) != 0 {
			peer = payment.Relays[0]
		}
		change := newLiquidityChange(peer, adjusted)
		logger.Info("Liquidity changed.",
			"increased_inbound_on", change.Alias+" "+change.PublicKey,
			"liquidity_inbound", lightning.FormatTokens(change.Inbound),
			"liquidity_inbound_opening", lightning.FormatTokens(change.InboundOpening),
			"liquidity_inbound_pending", lightning.FormatTokens(change.InboundPending),
			"liquidity_outbound", lightning.FormatTokens(change.Outbound),
			"liquidity_outbound_opening", lightning.FormatTokens(change.OutboundOpening),
			"liquidity_outbound_pending", lightning.FormatTokens(change.OutboundPending),
		)
		return change, nil
	})

	// Assemble the caller-facing result from the push outcome and the
	// optional reconciliation report.
	g.Add(taskResult, []string{taskPush, taskLiquidity}, func(_ context.Context, deps *dag.ResultBag) (any, error) {
		payment := dag.Dep[*lightning.Payment](deps, taskPush)
		return &Result{
			Fee:             payment.Fee,
			ID:              payment.ID,
			Preimage:        payment.Preimage,
			Relays:          payment.Relays,
			TokensSent:      payment.Tokens,
			LiquidityChange: dag.Dep[*LiquidityChange](deps, taskLiquidity),
		}, nil
	})

	return g
}
