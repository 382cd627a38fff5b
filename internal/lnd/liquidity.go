package lnd

import (
	"context"
	"fmt"
	"strings"

	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
)

type pendingChannelsResponse struct {
	PendingOpenChannels []struct {
		Channel struct {
			LocalBalance  string `json:"local_balance"`
			RemoteBalance string `json:"remote_balance"`
			RemoteNodePub string `json:"remote_node_pub"`
		} `json:"channel"`
	} `json:"pending_open_channels"`
}

type nodeInfoResponse struct {
	Node struct {
		Alias string `json:"alias"`
	} `json:"node"`
}

// GetPeerLiquidity re-reads a peer's liquidity. The settled payment id is
// accepted for interface parity: balances are re-read from the node, which
// already reflects the settlement by the time the push result is returned.
func (c *Client) GetPeerLiquidity(ctx context.Context, publicKey, settledID string) (*lightning.PeerLiquidity, error) {
	channels, err := c.GetChannels(ctx)
	if err != nil {
		return nil, err
	}

	liquidity := &lightning.PeerLiquidity{}
	for _, channel := range channels {
		if !strings.EqualFold(channel.PartnerPublicKey, publicKey) {
			continue
		}
		liquidity.Inbound += channel.RemoteBalance
		liquidity.Outbound += channel.LocalBalance
		for _, pending := range channel.PendingPayments {
			if pending.IsOutgoing {
				liquidity.OutboundPending += pending.Tokens
			} else {
				liquidity.InboundPending += pending.Tokens
			}
		}
	}

	var pending pendingChannelsResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&pending).
		Get("/v1/channels/pending")
	if err != nil {
		return nil, fmt.Errorf("failed getting pending channels: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected pending channels response status: %s", res.Status())
	}

	for _, opening := range pending.PendingOpenChannels {
		if !strings.EqualFold(opening.Channel.RemoteNodePub, publicKey) {
			continue
		}
		remote, err := tokens(opening.Channel.RemoteBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid opening remote balance: %w", err)
		}
		local, err := tokens(opening.Channel.LocalBalance)
		if err != nil {
			return nil, fmt.Errorf("invalid opening local balance: %w", err)
		}
		liquidity.InboundOpening += remote
		liquidity.OutboundOpening += local
	}

	// Alias lookup is cosmetic; a peer missing from the graph view still
	// has liquidity.
	var info nodeInfoResponse
	res, err = c.http.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/v1/graph/node/" + publicKey)
	if err == nil && !res.IsError() {
		liquidity.Alias = info.Node.Alias
	}

	return liquidity, nil
}
