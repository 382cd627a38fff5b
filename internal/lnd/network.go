package lnd

import (
	"context"
	"fmt"
)

type infoResponse struct {
	Chains []struct {
		Chain   string `json:"chain"`
		Network string `json:"network"`
	} `json:"chains"`
}

// GetNetwork reports the short network name the node settles on.
func (c *Client) GetNetwork(ctx context.Context) (string, error) {
	var body infoResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/v1/getinfo")
	if err != nil {
		return "", fmt.Errorf("failed getting node info: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("unexpected node info response status: %s", res.Status())
	}
	if len(body.Chains) == 0 {
		return "", fmt.Errorf("node info reports no chains")
	}

	chain := body.Chains[0]
	switch {
	case chain.Chain == "bitcoin" && chain.Network == "mainnet":
		return "btc", nil
	case chain.Chain == "bitcoin" && chain.Network == "testnet":
		return "btctestnet", nil
	case chain.Chain == "litecoin":
		return "ltc", nil
	}
	return "", fmt.Errorf("unrecognized chain %s %s", chain.Chain, chain.Network)
}
