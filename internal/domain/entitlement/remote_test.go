package entitlement

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devicedash/devicedash/internal/logging"
)

func TestRemoteRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/entitlements", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"premium":true,"tools":false,"ad_free":true}`))
	}))
	defer server.Close()

	remote := NewRemote(server.URL, logging.NewNop())
	ch, cancel := remote.Subscribe()
	defer cancel()

	require.NoError(t, remote.Refresh(context.Background()))

	state := remote.Current()
	assert.True(t, state.Premium)
	assert.False(t, state.Tools)
	assert.True(t, state.AdFree)

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal after refresh")
	}
}

func TestRemoteRefreshFailureKeepsSnapshot(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"premium":true}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	remote := NewRemote(server.URL, logging.NewNop())
	require.NoError(t, remote.Refresh(context.Background()))
	require.True(t, remote.Current().Premium)

	err := remote.Refresh(context.Background())
	assert.Error(t, err)
	// Last-known snapshot stays in effect
	assert.True(t, remote.Current().Premium)
}
