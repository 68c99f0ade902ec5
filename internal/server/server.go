package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/api/middleware"
	"github.com/devicedash/devicedash/internal/domain/adgate"
	"github.com/devicedash/devicedash/internal/domain/compose"
	"github.com/devicedash/devicedash/internal/domain/dispatch"
	"github.com/devicedash/devicedash/internal/domain/entitlement"
	"github.com/devicedash/devicedash/internal/domain/module"
	enginehttp "github.com/devicedash/devicedash/internal/http"
	"github.com/devicedash/devicedash/internal/infrastructure/config"
	"github.com/devicedash/devicedash/internal/infrastructure/monitoring"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
	"github.com/devicedash/devicedash/internal/storage"
	"github.com/devicedash/devicedash/internal/ws"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	store    *module.Store
	resolver entitlement.Resolver
	composer *compose.Composer
	logger   *logging.Logger
	cancel   context.CancelFunc
}

// New assembles the engine from configuration. Every collaborator is
// explicitly constructed and injected; there are no ambient singletons, so
// tests can substitute fakes for the resolver and ad gate.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	metrics := monitoring.NewMetrics()

	// Preference store backend
	var blob storage.Blob
	if cfg.Storage.Dir != "" {
		fileStore, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		blob = fileStore
	} else {
		logger.Warn("no storage directory configured, module configuration is ephemeral")
		blob = storage.NewMemoryStore()
	}

	// Seeded defaults, optionally overridden by a packaging manifest
	seed, err := module.LoadSeedManifest(cfg.Storage.SeedManifest)
	if err != nil {
		return nil, err
	}
	store := module.NewStore(blob, logger, module.WithSeed(seed), module.WithMetrics(metrics))

	// External collaborators
	var resolver entitlement.Resolver
	if cfg.Entitlement.URL != "" {
		resolver = entitlement.NewRemote(cfg.Entitlement.URL, logger)
	} else {
		logger.Warn("no entitlement endpoint configured, using in-memory resolver")
		resolver = entitlement.NewMemory(types.Entitlement{})
	}

	var gate adgate.Provider
	if cfg.AdGate.URL != "" {
		gate = adgate.NewNetwork(cfg.AdGate.URL, logger)
	} else {
		logger.Warn("no ad-gate endpoint configured, using in-memory provider")
		gate = adgate.NewMemory()
	}

	// Composition engine
	registry := dispatch.NewDefaultRegistry()
	unlocker := compose.NewUnlocker(resolver, gate, registry, logger)
	policy := compose.Policy{
		Layout:  compose.Layout(cfg.Dashboard.Layout),
		Cadence: cfg.Dashboard.AdCadence,
	}
	composer := compose.NewComposer(store, resolver, registry, unlocker, policy, logger).
		WithMetrics(metrics)

	// Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := enginehttp.NewHandlers(store, resolver, composer, metrics)
	wsHandler := ws.NewHandler(composer, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Dashboard composition
	router.GET("/dashboard", handlers.Dashboard)

	// Module configuration
	router.GET("/modules", handlers.ListModules)
	router.POST("/modules/:id/toggle", handlers.ToggleModule)
	router.POST("/modules/reorder", handlers.ReorderModules)
	router.POST("/lifecycle/foreground", handlers.Foreground)

	// Entitlement
	router.GET("/entitlement", handlers.Entitlement)
	router.POST("/entitlement/refresh", handlers.RefreshEntitlement)

	// Gated feature unlocks
	router.POST("/gates/:key/unlock", handlers.Unlock)
	router.POST("/gates/:key/dismiss", handlers.DismissGate)

	// Observability
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// WebSocket invalidation
	router.GET("/stream", wsHandler.HandleConnection)

	return &Server{
		router:   router,
		store:    store,
		resolver: resolver,
		composer: composer,
		logger:   logger,
	}, nil
}

// Run starts the recompose loop and serves HTTP until Close is called.
func (s *Server) Run(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.composer.Run(ctx)

	// Best-effort initial entitlement fetch; failure keeps the free tier
	if err := s.resolver.Refresh(ctx); err != nil {
		s.logger.Warn("initial entitlement refresh failed", zap.Error(err))
	} else {
		s.composer.Recompose()
	}

	s.http = &http.Server{Addr: addr, Handler: s.router}
	s.logger.Info("engine listening", zap.String("addr", addr))

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down gracefully, retrying any pending configuration persist.
func (s *Server) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.store.Foreground()

	if s.http != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(ctx)
	}
	return nil
}
