package lnd

import (
	"bufio"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/miketwenty1/balanceofsatoshis/internal/lightning"
	"github.com/miketwenty1/balanceofsatoshis/internal/push"
)

// Keysend payments carry the preimage to the destination in a custom
// record; plain messages ride in another well-known record type.
const (
	keysendRecordType = 5482373484
	messageRecordType = 34349334
	sendTimeoutSecs   = 90
)

// sendRequest is the wire shape of a /v2/router/send request. Byte fields
// are base64 in lnd's REST rendering.
type sendRequest struct {
	AllowSelfPayment  bool              `json:"allow_self_payment"`
	Amt               string            `json:"amt"`
	Dest              string            `json:"dest"`
	DestCustomRecords map[string]string `json:"dest_custom_records,omitempty"`
	FeeLimitSat       string            `json:"fee_limit_sat"`
	LastHopPubkey     string            `json:"last_hop_pubkey,omitempty"`
	NoInflightUpdates bool              `json:"no_inflight_updates"`
	OutgoingChanIDs   []string          `json:"outgoing_chan_ids,omitempty"`
	PaymentHash       string            `json:"payment_hash"`
	TimeoutSeconds    int               `json:"timeout_seconds"`
}

// sendUpdate is one streamed line of the send response.
type sendUpdate struct {
	Result *struct {
		FailureReason   string `json:"failure_reason"`
		FeeSat          string `json:"fee_sat"`
		Htlcs           []htlc `json:"htlcs"`
		PaymentHash     string `json:"payment_hash"`
		PaymentPreimage string `json:"payment_preimage"`
		Status          string `json:"status"`
		ValueSat        string `json:"value_sat"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type htlc struct {
	Route struct {
		Hops []struct {
			PubKey string `json:"pub_key"`
		} `json:"hops"`
	} `json:"route"`
	Status string `json:"status"`
}

// PushPayment executes a keysend push: the payment preimage travels to the
// destination as a custom record, so no invoice is required.
func (c *Client) PushPayment(ctx context.Context, req *push.ProbeRequest) (*lightning.Payment, error) {
	preimage := make([]byte, 32)
	if _, err := rand.Read(preimage); err != nil {
		return nil, fmt.Errorf("failed generating preimage: %w", err)
	}
	hash := sha256.Sum256(preimage)

	body, err := c.sendRequestFor(ctx, req, preimage, hash[:])
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetDoNotParseResponse(true).
		Post("/v2/router/send")
	if err != nil {
		return nil, fmt.Errorf("failed sending payment: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("unexpected send response status: %s", res.Status())
	}

	// With inflight updates disabled the stream carries a single terminal
	// update, but scan every line and keep the last to stay tolerant.
	var last sendUpdate
	var sawUpdate bool
	scanner := bufio.NewScanner(res.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var update sendUpdate
		if err := json.Unmarshal(line, &update); err != nil {
			return nil, fmt.Errorf("invalid send update: %w", err)
		}
		last = update
		sawUpdate = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading send updates: %w", err)
	}
	if !sawUpdate {
		return nil, fmt.Errorf("send stream ended without a payment update")
	}
	if last.Error != nil {
		return nil, fmt.Errorf("send failed: %s", last.Error.Message)
	}
	if last.Result == nil {
		return nil, fmt.Errorf("send stream ended without a payment result")
	}

	result := last.Result
	if result.Status != "SUCCEEDED" {
		return nil, fmt.Errorf("payment %s: %s", result.Status, result.FailureReason)
	}

	fee, err := tokens(result.FeeSat)
	if err != nil {
		return nil, fmt.Errorf("invalid fee in payment result: %w", err)
	}
	value, err := tokens(result.ValueSat)
	if err != nil {
		return nil, fmt.Errorf("invalid value in payment result: %w", err)
	}

	return &lightning.Payment{
		Fee:      fee,
		ID:       result.PaymentHash,
		Preimage: result.PaymentPreimage,
		Relays:   relays(result.Htlcs),
		Tokens:   value,
	}, nil
}

// sendRequestFor assembles the wire request, translating the resolved peer
// constraints: the outbound peer becomes the set of channel ids shared with
// it, the inbound peer becomes the last hop restriction.
func (c *Client) sendRequestFor(ctx context.Context, req *push.ProbeRequest, preimage, hash []byte) (*sendRequest, error) {
	dest, err := hex.DecodeString(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("invalid destination key: %w", err)
	}

	records := map[string]string{
		strconv.FormatUint(keysendRecordType, 10): base64.StdEncoding.EncodeToString(preimage),
	}
	if req.Message != "" {
		records[strconv.FormatUint(messageRecordType, 10)] = base64.StdEncoding.EncodeToString([]byte(req.Message))
	}
	for _, record := range req.Messages {
		records[strconv.FormatUint(record.Type, 10)] = base64.StdEncoding.EncodeToString(record.Value)
	}

	body := &sendRequest{
		AllowSelfPayment:  true,
		Amt:               strconv.FormatInt(req.Tokens, 10),
		Dest:              base64.StdEncoding.EncodeToString(dest),
		DestCustomRecords: records,
		FeeLimitSat:       strconv.FormatInt(req.MaxFee, 10),
		NoInflightUpdates: true,
		PaymentHash:       base64.StdEncoding.EncodeToString(hash),
		TimeoutSeconds:    sendTimeoutSecs,
	}

	if req.InThrough != "" {
		lastHop, err := hex.DecodeString(req.InThrough)
		if err != nil {
			return nil, fmt.Errorf("invalid inbound peer key: %w", err)
		}
		body.LastHopPubkey = base64.StdEncoding.EncodeToString(lastHop)
	}

	if req.OutThrough != "" {
		ids, err := c.outgoingChannelIDs(ctx, req.OutThrough)
		if err != nil {
			return nil, err
		}
		body.OutgoingChanIDs = ids
	}

	return body, nil
}

// outgoingChannelIDs lists the ids of the channels shared with the outbound
// constraint peer; the payment must leave through one of them.
func (c *Client) outgoingChannelIDs(ctx context.Context, publicKey string) ([]string, error) {
	channels, err := c.GetChannels(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, channel := range channels {
		if channel.PartnerPublicKey == publicKey {
			ids = append(ids, channel.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no channel with outbound peer %s", publicKey)
	}
	return ids, nil
}

// relays lists the hop public keys of the settled route.
func relays(htlcs []htlc) []string {
	for _, h := range htlcs {
		if h.Status != "SUCCEEDED" || len(h.Route.Hops) == 0 {
			continue
		}
		hops := make([]string, 0, len(h.Route.Hops))
		for _, hop := range h.Route.Hops {
			hops = append(hops, hop.PubKey)
		}
		return hops
	}
	return nil
}
