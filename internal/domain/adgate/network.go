package adgate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/logging"
)

// readinessTTL bounds how stale a cached readiness answer may be.
const readinessTTL = 5 * time.Second

// Network is a Provider backed by the ad-network bridge over HTTP.
// Readiness probes go through a retrying client and are cached briefly;
// Present is never retried, a rewarded ad is a single-shot interaction.
type Network struct {
	retrying *retryablehttp.Client
	oneshot  *http.Client
	baseURL  string
	logger   *logging.Logger

	mu        sync.Mutex
	ready     bool
	checkedAt time.Time
}

// NewNetwork creates a provider talking to the ad-network bridge at baseURL.
func NewNetwork(baseURL string, logger *logging.Logger) *Network {
	retrying := retryablehttp.NewClient()
	retrying.RetryMax = 2
	retrying.RetryWaitMin = 200 * time.Millisecond
	retrying.RetryWaitMax = time.Second
	retrying.Logger = nil

	return &Network{
		retrying: retrying,
		oneshot:  &http.Client{Timeout: 90 * time.Second},
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Ready reports whether a rewarded ad is currently loaded. Best-effort: a
// probe failure reads as not ready, and answers may be a few seconds stale.
func (n *Network) Ready() bool {
	n.mu.Lock()
	if time.Since(n.checkedAt) < readinessTTL {
		ready := n.ready
		n.mu.Unlock()
		return ready
	}
	n.mu.Unlock()

	ready := n.probe()

	n.mu.Lock()
	n.ready = ready
	n.checkedAt = time.Now()
	n.mu.Unlock()
	return ready
}

func (n *Network) probe() bool {
	resp, err := n.retrying.Get(n.baseURL + "/v1/rewarded/ready")
	if err != nil {
		n.logger.Debug("ad readiness probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var payload struct {
		Ready bool `json:"ready"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false
	}
	return payload.Ready
}

// Present triggers a rewarded-ad presentation and blocks until the bridge
// reports the outcome.
func (n *Network) Present(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		n.baseURL+"/v1/rewarded/present", nil)
	if err != nil {
		return false, fmt.Errorf("failed to build present request: %w", err)
	}

	resp, err := n.oneshot.Do(req)
	if err != nil {
		return false, fmt.Errorf("ad presentation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("ad network returned %s", resp.Status)
	}

	var payload struct {
		Earned bool `json:"earned"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode presentation result: %w", err)
	}
	return payload.Earned, nil
}
