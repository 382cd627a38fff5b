// Package lightning holds the domain value types exchanged with a Lightning
// node and small helpers over them. The types mirror what the node reports;
// nothing here talks to the network.
package lightning

// PendingPayment is an in-flight HTLC locked on a channel.
type PendingPayment struct {
	// IsOutgoing is true when the HTLC spends local balance.
	IsOutgoing bool
	// Tokens is the HTLC amount.
	Tokens int64
}

// Channel is the view of one open channel with a peer.
type Channel struct {
	Capacity         int64
	ID               string
	LocalBalance     int64
	PartnerPublicKey string
	PendingPayments  []PendingPayment
	RemoteBalance    int64
}

// PeerLiquidity is the node's liquidity view of a single peer after a
// settlement, including amounts still pending and amounts in channels that
// are opening.
type PeerLiquidity struct {
	Alias           string
	Inbound         int64
	InboundOpening  int64
	InboundPending  int64
	Outbound        int64
	OutboundOpening int64
	OutboundPending int64
}

// Payment is the outcome of a completed payment attempt. Preimage is empty
// when the payment did not settle.
type Payment struct {
	Fee      int64
	ID       string
	Preimage string
	// Relays are the public keys of the hops the payment traveled through;
	// the first relay is the outgoing peer.
	Relays []string
	Tokens int64
}
