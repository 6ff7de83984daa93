package ton

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RouterMetadata describes a DEX router contract and its companion
// wrapped-native (pTON) master, as reported by the chain-metadata
// service.
type RouterMetadata struct {
	RouterAddress     string `json:"router_address"`
	PtonMasterAddress string `json:"pton_master_address"`
}

// Client reads contract metadata from a TON RPC/indexer endpoint.
// The API key is supplied by the environment and passed through
// opaquely.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call metadata service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metadata service returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// GetRouterMetadata resolves a router contract's metadata, including
// its companion pTON master.
func (c *Client) GetRouterMetadata(ctx context.Context, routerAddress string) (RouterMetadata, error) {
	var meta RouterMetadata
	endpoint := fmt.Sprintf("%s/v2/routers/%s", c.baseURL, url.PathEscape(routerAddress))
	if err := c.get(ctx, endpoint, nil, &meta); err != nil {
		return RouterMetadata{}, fmt.Errorf("failed to get router metadata: %w", err)
	}
	return meta, nil
}

type jettonWalletResponse struct {
	Address string `json:"address"`
}

// GetJettonWalletAddress resolves the jetton wallet a master contract
// assigns to an owner (the master's get_wallet_address get-method).
func (c *Client) GetJettonWalletAddress(ctx context.Context, master, owner string) (string, error) {
	var out jettonWalletResponse
	endpoint := fmt.Sprintf("%s/v2/jettons/%s/wallet", c.baseURL, url.PathEscape(master))

	params := url.Values{}
	params.Set("owner", owner)

	if err := c.get(ctx, endpoint, params, &out); err != nil {
		return "", fmt.Errorf("failed to get jetton wallet address: %w", err)
	}
	return out.Address, nil
}
