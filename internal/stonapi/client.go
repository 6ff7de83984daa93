package stonapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError is an application-level rejection from the quote service:
// the service answered, but refused the request. Payload is the raw
// body and is what the error classifier inspects. Transport failures
// are never wrapped in APIError.
type APIError struct {
	StatusCode int
	Payload    string
}

func (e *APIError) Error() string {
	return e.Payload
}

// Client talks to the DEX quote/simulation service.
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

// SimulateProvision submits one simulation attempt. A non-2xx answer
// with a readable body comes back as *APIError; anything else is a
// transport failure surfaced verbatim.
func (c *Client) SimulateProvision(ctx context.Context, req SimulateRequest) (*SimulateResponse, error) {
	endpoint := fmt.Sprintf("%s/v1/liquidity_provisioning/simulate", c.baseURL)

	params := url.Values{}
	params.Set("provision_type", string(req.ProvisionType))
	params.Set("token_a", req.TokenA)
	params.Set("token_b", req.TokenB)
	params.Set("token_a_units", req.TokenAUnits)
	params.Set("slippage_tolerance", req.SlippageTolerance)
	if req.TokenBUnits != "" {
		params.Set("token_b_units", req.TokenBUnits)
	}
	if req.PoolAddress != "" {
		params.Set("pool_address", req.PoolAddress)
	}
	if req.WalletAddress != "" {
		params.Set("wallet_address", req.WalletAddress)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call quote service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Payload:    string(body),
		}
	}

	var out SimulateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode simulation response: %w", err)
	}

	return &out, nil
}
