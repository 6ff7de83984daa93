package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client queries the asset catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type queryAssetsResponse struct {
	AssetList []Asset `json:"asset_list"`
}

// QueryAssets fetches the tradable assets matching a tag-disjunction
// filter, e.g. `"liquidity:high | liquidity:medium | liquidity:low"`.
// The result order is the catalog's own; callers treat it as opaque.
func (c *Client) QueryAssets(ctx context.Context, filter string) ([]Asset, error) {
	endpoint := fmt.Sprintf("%s/v1/assets/query", c.baseURL)

	params := url.Values{}
	params.Set("condition", filter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))
	}

	var out queryAssetsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return out.AssetList, nil
}
