package entitlement

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/infrastructure/resilience"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
)

// Remote resolves entitlement from the billing service. Refresh failures
// are absorbed: the last-known snapshot stays in effect and the error is
// returned only so explicitly initiated restore/purchase flows can surface
// an actionable message.
type Remote struct {
	client  *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger

	mu      sync.RWMutex
	state   types.Entitlement
	subs    map[int]chan struct{}
	nextSub int
}

// receiptResponse is the billing service's entitlement payload.
type receiptResponse struct {
	Premium bool `json:"premium"`
	Tools   bool `json:"tools"`
	AdFree  bool `json:"ad_free"`
}

// NewRemote creates a resolver backed by the billing endpoint at baseURL.
func NewRemote(baseURL string, logger *logging.Logger) *Remote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)

	settings := resilience.RemoteDefaults()
	settings.OnStateChange = func(name string, from, to resilience.State) {
		logger.Info("circuit breaker state change",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	}
	breaker := resilience.New("entitlement-refresh", settings)

	return &Remote{
		client:  client,
		breaker: breaker,
		logger:  logger,
		subs:    make(map[int]chan struct{}),
	}
}

// Current returns the last-known entitlement snapshot.
func (r *Remote) Current() types.Entitlement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Refresh fetches the current entitlement from the billing service. On
// failure the previous snapshot remains in effect.
func (r *Remote) Refresh(ctx context.Context) error {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var payload receiptResponse
		resp, err := r.client.R().
			SetContext(ctx).
			SetResult(&payload).
			Get("/v1/entitlements")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("billing service returned %s", resp.Status())
		}
		return payload, nil
	})
	if err != nil {
		r.logger.Warn("entitlement refresh failed, keeping last snapshot",
			zap.Error(err))
		return fmt.Errorf("entitlement refresh: %w", err)
	}

	payload := result.(receiptResponse)
	next := types.Entitlement{
		Premium: payload.Premium,
		Tools:   payload.Tools,
		AdFree:  payload.AdFree,
	}

	r.mu.Lock()
	changed := r.state != next
	r.state = next
	r.mu.Unlock()

	if changed {
		r.notify()
	}
	return nil
}

// Subscribe returns a change-signal channel plus a cancel func.
func (r *Remote) Subscribe() (<-chan struct{}, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan struct{}, 1)
	r.subs[id] = ch

	return ch, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

func (r *Remote) notify() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
