// Package signal is the WebSocket adapter for the call-signaling relay: it
// owns the transport (upgrade, pumps, framing) and translates wire messages
// into orchestrator calls. All room and relay semantics live in internal/app.
package signal

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/app"
	"github.com/nervis/signaling/internal/config"
	"github.com/nervis/signaling/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Orch     *app.Orchestrator
	Cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewController(orch *app.Orchestrator, cfg *config.Config) *Controller {
	return &Controller{
		Orch:     orch,
		Cfg:      cfg,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(cfg.AllowedOrigins)},
	}
}

// originChecker allows everything when no allow-list is configured (dev
// mode). Requests without an Origin header are non-browser clients and are
// always allowed, matching the gorilla default.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimSuffix(strings.ToLower(o), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.TrimSuffix(strings.ToLower(origin), "/")]
		return ok
	}
}

// wsConn wraps one *websocket.Conn behind a buffered send channel so that a
// slow reader can never block the event path; TrySend drops instead.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.Mutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and starts the connection's pumps. Every
// upgrade mints a fresh connection id: a client that reconnects is a new
// connection and rejoins its room itself.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	connID := core.ConnectionID(uuid.NewString())

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.Cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Cfg.ReadLimit)
	}
	log.Info().Str("module", "signal").Str("conn", string(connID)).Msg("new WS connection")

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Connect(connID, conn, cancel)

	go ctl.writePump(ctx, connID, conn)
	go ctl.readPump(ctx, connID, conn)
}
