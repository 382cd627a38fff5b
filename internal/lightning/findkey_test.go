package lightning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA = "02" + "aa0000000000000000000000000000000000000000000000000000000000" + "0000"
	keyB = "03" + "bb0000000000000000000000000000000000000000000000000000000000" + "0000"
)

func testChannels() []Channel {
	return []Channel{
		{ID: "700000x1x0", PartnerPublicKey: keyA},
		{ID: "700000x2x1", PartnerPublicKey: keyB},
	}
}

func TestFindKey(t *testing.T) {
	t.Run("full public key resolves to itself", func(t *testing.T) {
		got, err := FindKey(nil, strings.ToUpper(keyA))
		require.NoError(t, err)
		assert.Equal(t, keyA, got)
	})

	t.Run("key prefix", func(t *testing.T) {
		got, err := FindKey(testChannels(), "03bb")
		require.NoError(t, err)
		assert.Equal(t, keyB, got)
	})

	t.Run("channel id", func(t *testing.T) {
		got, err := FindKey(testChannels(), "700000x1x0")
		require.NoError(t, err)
		assert.Equal(t, keyA, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := FindKey(testChannels(), "ffff")
		assert.ErrorIs(t, err, ErrNoMatchingPeer)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		channels := []Channel{
			{PartnerPublicKey: keyA},
			{PartnerPublicKey: "02" + strings.Repeat("c", 64)},
		}
		_, err := FindKey(channels, "02")
		assert.ErrorIs(t, err, ErrAmbiguousQuery)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := FindKey(testChannels(), "")
		assert.ErrorIs(t, err, ErrNoMatchingPeer)
	})
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "0.00002500", FormatTokens(2500))
	assert.Equal(t, "1.00000000", FormatTokens(1e8))
	assert.Equal(t, "0.00000000", FormatTokens(0))
}
