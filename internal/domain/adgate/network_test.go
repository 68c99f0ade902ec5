package adgate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicedash/devicedash/internal/logging"
)

func TestNetworkReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/rewarded/ready", r.URL.Path)
		w.Write([]byte(`{"ready":true}`))
	}))
	defer server.Close()

	provider := NewNetwork(server.URL, logging.NewNop())
	assert.True(t, provider.Ready())
}

func TestNetworkReadyCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"ready":true}`))
	}))
	defer server.Close()

	provider := NewNetwork(server.URL, logging.NewNop())
	provider.Ready()
	provider.Ready()
	assert.Equal(t, 1, calls, "second check within the TTL must hit the cache")
}

func TestNetworkProbeFailureReadsNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewNetwork(server.URL, logging.NewNop())
	assert.False(t, provider.Ready())
}

func TestNetworkPresent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/rewarded/present", r.URL.Path)
		w.Write([]byte(`{"earned":true}`))
	}))
	defer server.Close()

	provider := NewNetwork(server.URL, logging.NewNop())
	earned, err := provider.Present(context.Background())
	require.NoError(t, err)
	assert.True(t, earned)
}
