package stonapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateProvision_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/liquidity_provisioning/simulate", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "Initial", q.Get("provision_type"))
		assert.Equal(t, "EQtokA", q.Get("token_a"))
		assert.Equal(t, "EQtokB", q.Get("token_b"))
		assert.Equal(t, "1500000000", q.Get("token_a_units"))
		assert.Equal(t, "2000000000", q.Get("token_b_units"))
		assert.Equal(t, "0.001", q.Get("slippage_tolerance"))
		assert.Empty(t, q.Get("pool_address"))

		_ = json.NewEncoder(w).Encode(SimulateResponse{
			ProvisionType: "Initial",
			PoolAddress:   "EQpool",
			RouterAddress: "EQrouter",
			TokenA:        "EQtokA",
			TokenB:        "EQtokB",
			TokenAUnits:   "1500000000",
			TokenBUnits:   "2000000000",
			EstLpUnits:    "1700000000",
			MinLpUnits:    "1695000000",
			PriceImpact:   "0.002",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SimulateProvision(context.Background(), SimulateRequest{
		ProvisionType:     ProvisionInitial,
		TokenA:            "EQtokA",
		TokenB:            "EQtokB",
		TokenAUnits:       "1500000000",
		TokenBUnits:       "2000000000",
		SlippageTolerance: "0.001",
	})
	require.NoError(t, err)
	assert.Equal(t, "EQpool", resp.PoolAddress)
	assert.Equal(t, "1695000000", resp.MinLpUnits)
}

func TestSimulateProvision_APIRejection(t *testing.T) {
	payload := "1020: pool already exists for selected type of router: [EQabc, EQdef]"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SimulateProvision(context.Background(), SimulateRequest{
		ProvisionType: ProvisionInitial,
		TokenA:        "EQtokA",
		TokenB:        "EQtokB",
		TokenAUnits:   "1",
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, payload, apiErr.Payload)
	assert.True(t, IsExistingPoolError(apiErr.Payload))
}

func TestSimulateProvision_BalancedCarriesPoolAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Balanced", q.Get("provision_type"))
		assert.Equal(t, "EQxyz", q.Get("pool_address"))
		// leg B is implied by the pool's ratio, never sent
		assert.Empty(t, q.Get("token_b_units"))

		_ = json.NewEncoder(w).Encode(SimulateResponse{ProvisionType: "Balanced", PoolAddress: "EQxyz"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SimulateProvision(context.Background(), SimulateRequest{
		ProvisionType: ProvisionBalanced,
		TokenA:        "EQtokA",
		TokenB:        "EQtokB",
		TokenAUnits:   "1500000000",
		PoolAddress:   "EQxyz",
	})
	require.NoError(t, err)
	assert.Equal(t, "EQxyz", resp.PoolAddress)
}
