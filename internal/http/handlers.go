package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/devicedash/devicedash/internal/domain/compose"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/domain/module"
	"github.com/devicedash/devicedash/internal/infrastructure/monitoring"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *module.Store
	resolver entitlement.Resolver
	composer *compose.Composer
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(store *module.Store, resolver entitlement.Resolver, composer *compose.Composer, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		store:    store,
		resolver: resolver,
		composer: composer,
		metrics:  metrics,
	}
}

// Root returns service information
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "devicedash-engine",
		"status":  "running",
	})
}

// Health returns service health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"persist_dirty": h.store.Dirty(),
		"modules":       len(h.store.Load()),
		"items":         len(h.composer.Current()),
	})
}

// Dashboard returns the current presentation snapshot
func (h *Handlers) Dashboard(c *gin.Context) {
	items := h.composer.Current()
	policy := h.composer.Policy()

	c.JSON(http.StatusOK, gin.H{
		"layout":  policy.Layout,
		"cadence": policy.Cadence,
		"items":   items,
	})
}

// ListModules returns the full descriptor list, including disabled modules
func (h *Handlers) ListModules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"modules": h.store.Load(),
	})
}

// ToggleModule flips the enabled flag of one module
func (h *Handlers) ToggleModule(c *gin.Context) {
	id := c.Param("id")
	h.store.Toggle(id)
	if h.metrics != nil {
		h.metrics.ModuleToggles.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"modules": h.store.Load(),
	})
}

// ReorderRequest addresses a group of modules by index and a destination
type ReorderRequest struct {
	From []int `json:"from" binding:"required"`
	To   int   `json:"to"`
}

// ReorderModules moves a group of modules to a new position
func (h *Handlers) ReorderModules(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.store.Reorder(req.From, req.To)
	if h.metrics != nil {
		h.metrics.ModuleReorders.Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"modules": h.store.Load(),
	})
}

// Foreground retries a pending configuration persist
func (h *Handlers) Foreground(c *gin.Context) {
	h.store.Foreground()

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"persist_dirty": h.store.Dirty(),
	})
}

// Entitlement returns the current entitlement snapshot
func (h *Handlers) Entitlement(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entitlement": h.resolver.Current(),
	})
}

// RefreshEntitlement refreshes entitlement from the billing service.
// Unlike background refreshes, this user-initiated path surfaces failures
// as actionable errors.
func (h *Handlers) RefreshEntitlement(c *gin.Context) {
	err := h.resolver.Refresh(c.Request.Context())
	if h.metrics != nil {
		h.metrics.RecordEntitlementRefresh(err == nil)
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "could not restore purchases, please try again",
		})
		return
	}

	h.composer.Recompose()
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"entitlement": h.resolver.Current(),
	})
}

// Unlock drives the unlock state machine for a gated feature. The view
// token identifies the requesting control; clients may omit it and one is
// assigned for the request.
func (h *Handlers) Unlock(c *gin.Context) {
	key := c.Param("key")
	token := c.Query("view")
	if token == "" {
		token = uuid.New().String()
	}

	state, err := h.composer.Unlocker().RequestUnlock(c.Request.Context(), key, token)
	if h.metrics != nil && err == nil {
		h.metrics.RecordAdPresentation(string(state))
	}

	switch {
	case errors.Is(err, compose.ErrPresentationInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"state":   state,
			"error":   "an ad is already presenting for this module",
		})
	case errors.Is(err, compose.ErrAdUnavailable):
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"state":   state,
			"error":   "no ad currently available",
		})
	case errors.Is(err, compose.ErrNotGated):
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"state":   state,
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
	default:
		h.composer.Recompose()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"state":   state,
		})
	}
}

// DismissGate invalidates a view token so an in-flight ad result is not
// applied to a control that no longer exists
func (h *Handlers) DismissGate(c *gin.Context) {
	key := c.Param("key")
	token := c.Query("view")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "view token is required",
		})
		return
	}

	h.composer.Unlocker().Dismiss(key, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
