package push

import "github.com/miketwenty1/balanceofsatoshis/internal/lightning"

// Request is the caller-supplied description of a push payment. It is
// immutable for the duration of a run.
type Request struct {
	// Amount is the amount expression, e.g. "2500" or "1eur".
	Amount string
	// Destination is the 66 hex character public key to push to.
	Destination string
	// InThrough optionally constrains the inbound routing peer. At most a
	// single value; multiple values are a validation error.
	InThrough []string
	// IsDryRun refuses the network payment after logging what would be paid.
	IsDryRun bool
	// MaxFee is the routing fee ceiling. Zero is valid; nil means the
	// caller never specified one, which is a validation error.
	MaxFee *int64
	// Message optionally rides along with the payment.
	Message string
	// OutThrough optionally constrains the outbound routing peer.
	OutThrough []string
	// QuizAnswers, when present, are sent as custom records. Between two
	// and ten answers, and a message is required to pose the quiz.
	QuizAnswers []string
}

// Result is produced exactly once per successful run.
type Result struct {
	Fee        int64    `json:"fee"`
	ID         string   `json:"id"`
	Preimage   string   `json:"preimage"`
	Relays     []string `json:"relays"`
	TokensSent int64    `json:"tokens_sent"`
	// LiquidityChange is set only when an out-routing peer was specified.
	LiquidityChange *LiquidityChange `json:"liquidity_change,omitempty"`
}

// LiquidityChange is the reconciled liquidity view of the outbound peer
// after the payment settled.
type LiquidityChange struct {
	Alias           string `json:"alias,omitempty"`
	PublicKey       string `json:"public_key"`
	Inbound         int64  `json:"inbound"`
	InboundOpening  int64  `json:"inbound_opening"`
	InboundPending  int64  `json:"inbound_pending"`
	Outbound        int64  `json:"outbound"`
	OutboundOpening int64  `json:"outbound_opening"`
	OutboundPending int64  `json:"outbound_pending"`
}

// newLiquidityChange maps the node's post-settlement peer view into the
// report attached to the push result.
func newLiquidityChange(publicKey string, liquidity *lightning.PeerLiquidity) *LiquidityChange {
	return &LiquidityChange{
		Alias:           liquidity.Alias,
		PublicKey:       publicKey,
		Inbound:         liquidity.Inbound,
		InboundOpening:  liquidity.InboundOpening,
		InboundPending:  liquidity.InboundPending,
		Outbound:        liquidity.Outbound,
		OutboundOpening: liquidity.OutboundOpening,
		OutboundPending: liquidity.OutboundPending,
	}
}
