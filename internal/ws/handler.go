package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/domain/compose"
	"github.com/devicedash/devicedash/internal/infrastructure/monitoring"
	"github.com/devicedash/devicedash/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler pushes presentation invalidation to rendering clients. The
// contract is pull-snapshot-plus-push-invalidation: clients fetch the
// sequence over REST and are nudged here when it changes.
type Handler struct {
	composer *compose.Composer
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(composer *compose.Composer, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	return &Handler{
		composer: composer,
		metrics:  metrics,
		logger:   logger,
	}
}

// HandleConnection handles WebSocket upgrade and the invalidation loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	changes, cancel := h.composer.Subscribe()
	defer cancel()

	h.send(conn, map[string]interface{}{
		"type":  "system",
		"items": len(h.composer.Current()),
	})

	// Drain client frames so pings and close frames are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-changes:
			if !h.send(conn, map[string]interface{}{
				"type":  "presentation_changed",
				"items": len(h.composer.Current()),
			}) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, payload map[string]interface{}) bool {
	if err := conn.WriteJSON(payload); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
		return false
	}
	return true
}
