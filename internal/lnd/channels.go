package lnd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
)

// rpcChannel is the wire shape of one entry in /v1/channels. lnd renders
// int64 fields as strings in REST responses.
type rpcChannel struct {
	Capacity      string    `json:"capacity"`
	ChanID        string    `json:"chan_id"`
	LocalBalance  string    `json:"local_balance"`
	PendingHtlcs  []rpcHtlc `json:"pending_htlcs"`
	RemoteBalance string    `json:"remote_balance"`
	RemotePubkey  string    `json:"remote_pubkey"`
}

type rpcHtlc struct {
	Amount   string `json:"amount"`
	Incoming bool   `json:"incoming"`
}

type channelsResponse struct {
	Channels []rpcChannel `json:"channels"`
}

// GetChannels lists the node's open channels.
func (c *Client) GetChannels(ctx context.Context) ([]lightning.Channel, error) {
	var body channelsResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/v1/channels")
	if err != nil {
		return nil, fmt.Errorf("failed getting channels: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("unexpected channels response status: %s", res.Status())
	}

	channels := make([]lightning.Channel, 0, len(body.Channels))
	for _, channel := range body.Channels {
		parsed, err := channel.toChannel()
		if err != nil {
			return nil, err
		}
		channels = append(channels, parsed)
	}
	return channels, nil
}

func (r rpcChannel) toChannel() (lightning.Channel, error) {
	capacity, err := tokens(r.Capacity)
	if err != nil {
		return lightning.Channel{}, fmt.Errorf("invalid channel capacity: %w", err)
	}
	local, err := tokens(r.LocalBalance)
	if err != nil {
		return lightning.Channel{}, fmt.Errorf("invalid local balance: %w", err)
	}
	remote, err := tokens(r.RemoteBalance)
	if err != nil {
		return lightning.Channel{}, fmt.Errorf("invalid remote balance: %w", err)
	}

	pending := make([]lightning.PendingPayment, 0, len(r.PendingHtlcs))
	for _, htlc := range r.PendingHtlcs {
		amount, err := tokens(htlc.Amount)
		if err != nil {
			return lightning.Channel{}, fmt.Errorf("invalid htlc amount: %w", err)
		}
		pending = append(pending, lightning.PendingPayment{
			IsOutgoing: !htlc.Incoming,
			Tokens:     amount,
		})
	}

	return lightning.Channel{
		Capacity:         capacity,
		ID:               r.ChanID,
		LocalBalance:     local,
		PartnerPublicKey: r.RemotePubkey,
		PendingPayments:  pending,
		RemoteBalance:    remote,
	}, nil
}

// tokens parses lnd's string-rendered token amounts; empty means zero.
func tokens(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
