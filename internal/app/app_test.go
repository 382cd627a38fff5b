package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miketwenty1/balanceofsatoshis/internal/config"
	"github.com/miketwenty1/balanceofsatoshis/internal/fiat"
	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
	"github.com/miketwenty1/balanceofsatoshis/internal/push"
)

const (
	testDestination = "030000000000000000000000000000000000000000000000000000000000000001"
	testPeerKey     = "020000000000000000000000000000000000000000000000000000000000000002"
)

func validConfig() *config.Model {
	cfg := config.Default()
	cfg.Lightning.Host = "node.example:8080"
	cfg.Lightning.Macaroon = "0fa1"
	return cfg
}

func TestNewRejectsMissingHost(t *testing.T) {
	cfg := validConfig()
	cfg.Lightning.Host = ""

	_, err := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.ErrorContains(t, err, "lightning host")
}

func TestNewRejectsMissingMacaroon(t *testing.T) {
	cfg := validConfig()
	cfg.Lightning.Macaroon = ""

	_, err := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.ErrorContains(t, err, "lightning macaroon")
}

// stubNode satisfies every workflow collaborator with canned responses.
type stubNode struct{}

func (stubNode) GetChannels(context.Context) ([]lightning.Channel, error) {
	return []lightning.Channel{{
		Capacity:         1000000,
		ID:               "1",
		LocalBalance:     500000,
		PartnerPublicKey: testPeerKey,
		RemoteBalance:    499000,
	}}, nil
}

func (stubNode) GetNetwork(context.Context) (string, error) { return "btc", nil }

func (stubNode) FindKey(_ context.Context, channels []lightning.Channel, query string) (string, error) {
	return lightning.FindKey(channels, query)
}

func (stubNode) GetRates(_ context.Context, symbols []string) ([]fiat.Rate, error) {
	rates := make([]fiat.Rate, 0, len(symbols))
	for _, symbol := range symbols {
		rates = append(rates, fiat.Rate{Ticker: strings.ToUpper(symbol), Rate: 1})
	}
	return rates, nil
}

func (stubNode) PushPayment(_ context.Context, req *push.ProbeRequest) (*lightning.Payment, error) {
	return &lightning.Payment{
		Fee:      1,
		ID:       "payment-id",
		Preimage: "aabb",
		Relays:   []string{testPeerKey},
		Tokens:   req.Tokens,
	}, nil
}

func (stubNode) GetPeerLiquidity(context.Context, string, string) (*lightning.PeerLiquidity, error) {
	return &lightning.PeerLiquidity{Alias: "carol", Inbound: 1, Outbound: 2}, nil
}

func TestRunPrintsResult(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := validConfig()
	cfg.Log.Level = "debug"
	app, err := New(&out, &logs, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	app.workflow = &push.Workflow{
		Channels:  stubNode{},
		Finder:    stubNode{},
		Liquidity: stubNode{},
		Network:   stubNode{},
		Prober:    stubNode{},
		Rates:     stubNode{},
	}

	err = app.Run(t.Context(), &push.Request{
		Amount:      "2500",
		Destination: testDestination,
	})
	require.NoError(t, err)

	require.Contains(t, out.String(), `"tokens_sent": 2500`)
	require.Contains(t, out.String(), `"preimage": "aabb"`)
	require.Contains(t, logs.String(), "push_id=")
}

func TestRunReturnsWorkflowError(t *testing.T) {
	var out, logs bytes.Buffer
	app, err := New(&out, &logs, validConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	app.workflow = &push.Workflow{
		Channels:  stubNode{},
		Finder:    stubNode{},
		Liquidity: stubNode{},
		Network:   stubNode{},
		Prober:    stubNode{},
		Rates:     stubNode{},
	}

	err = app.Run(t.Context(), &push.Request{Destination: testDestination})
	require.ErrorIs(t, err, push.ErrExpectedAmount)
	require.Empty(t, out.String())
}
