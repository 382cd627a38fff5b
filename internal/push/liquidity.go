package push

import "github.com/miketwenty1/balanceofsatoshis/internal/lightning"

// snapshot is a peer's aggregated channel liquidity. Pending payments are
// credited optimistically: an incoming in-flight payment still counts as
// remote balance and an outgoing one as local balance, as if each had
// already settled. This convention is intentional and changes the evaluated
// push amount when HTLCs are in flight.
type snapshot struct {
	Capacity int64
	Inbound  int64
	Outbound int64
}

// peerSnapshot sums liquidity across every channel with the given peer. A
// peer may have multiple channels; all of them contribute. An empty key
// matches nothing and yields a zero snapshot.
func peerSnapshot(channels []lightning.Channel, publicKey string) snapshot {
	var s snapshot
	if publicKey == "" {
		return s
	}

	for _, channel := range channels {
		if channel.PartnerPublicKey != publicKey {
			continue
		}

		s.Capacity += channel.Capacity
		inbound, outbound := channel.RemoteBalance, channel.LocalBalance
		for _, pending := range channel.PendingPayments {
			if pending.IsOutgoing {
				outbound += pending.Tokens
			} else {
				inbound += pending.Tokens
			}
		}
		s.Inbound += inbound
		s.Outbound += outbound
	}
	return s
}
