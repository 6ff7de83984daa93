package ton

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRouterMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/routers/EQrouter", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		_ = json.NewEncoder(w).Encode(RouterMetadata{
			RouterAddress:     "EQrouter",
			PtonMasterAddress: "EQpton",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	meta, err := client.GetRouterMetadata(context.Background(), "EQrouter")
	require.NoError(t, err)
	assert.Equal(t, "EQrouter", meta.RouterAddress)
	assert.Equal(t, "EQpton", meta.PtonMasterAddress)
}

func TestGetJettonWalletAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/jettons/EQmaster/wallet", r.URL.Path)
		assert.Equal(t, "EQowner", r.URL.Query().Get("owner"))

		_ = json.NewEncoder(w).Encode(map[string]string{"address": "EQwallet"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	addr, err := client.GetJettonWalletAddress(context.Background(), "EQmaster", "EQowner")
	require.NoError(t, err)
	assert.Equal(t, "EQwallet", addr)
}

func TestGetRouterMetadata_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("router not found"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.GetRouterMetadata(context.Background(), "EQmissing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
