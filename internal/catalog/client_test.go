package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryAssets(t *testing.T) {
	six := 6
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/assets/query", r.URL.Path)
		assert.Equal(t, "liquidity:high | liquidity:medium", r.URL.Query().Get("condition"))

		_ = json.NewEncoder(w).Encode(queryAssetsResponse{AssetList: []Asset{
			{ContractAddress: "EQnative", Kind: KindNative, Symbol: "TON"},
			{ContractAddress: "EQusdt", Kind: KindJetton, Symbol: "USDT", Decimals: &six},
		}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assets, err := client.QueryAssets(context.Background(), "liquidity:high | liquidity:medium")
	require.NoError(t, err)
	require.Len(t, assets, 2)

	// catalog order is preserved as-is
	assert.True(t, assets[0].IsNative())
	assert.Equal(t, "USDT", assets[1].Symbol)
	require.NotNil(t, assets[1].Decimals)
	assert.Equal(t, 6, *assets[1].Decimals)
}

func TestQueryAssets_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.QueryAssets(context.Background(), "liquidity:high")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
