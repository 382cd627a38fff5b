package lightning

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Resolution failures are distinct so callers can tell an unknown peer from
// an underspecified query.
var (
	ErrNoMatchingPeer = errors.New("no peer found matching query")
	ErrAmbiguousQuery = errors.New("query matches multiple peers")
)

var publicKeyPattern = regexp.MustCompile(`(?i)^[0-9a-f]{66}$`)

// IsPublicKey reports whether a string is a well formed 33-byte compressed
// public key in hex form.
func IsPublicKey(s string) bool {
	return publicKeyPattern.MatchString(s)
}

// FindKey resolves a free-form peer query against channel data. A full
// public key resolves to itself; otherwise the query is matched as a key
// prefix or an exact channel id. The query must identify exactly one peer.
func FindKey(channels []Channel, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("%w: %q", ErrNoMatchingPeer, query)
	}

	if IsPublicKey(query) {
		return strings.ToLower(query), nil
	}

	lowered := strings.ToLower(query)
	matches := make(map[string]bool)
	for _, channel := range channels {
		key := strings.ToLower(channel.PartnerPublicKey)
		if strings.HasPrefix(key, lowered) || channel.ID == query {
			matches[key] = true
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNoMatchingPeer, query)
	case 1:
		for key := range matches {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrAmbiguousQuery, query)
}
