package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/adapters/signal"
	"github.com/nervis/signaling/internal/app"
	"github.com/nervis/signaling/internal/config"
	"github.com/nervis/signaling/internal/domain"
	"github.com/nervis/signaling/internal/transcript"
)

// ClientTokenMiddleware stamps each browser with a long-lived token used for
// log correlation across reconnects. It is not a connection identity: every
// websocket upgrade still gets its own fresh connection id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter builds the HTTP surface. transcripts may be nil; the transcript
// read endpoint is only registered when the sink is enabled.
func SetupRouter(ctx context.Context, cfg *config.Config, orch *app.Orchestrator, transcripts *transcript.Store) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("SignalingSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctrl := signal.NewController(orch, cfg)
	iceServers := cfg.ICEServers()

	api := r.Group("/api")

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws signal endpoint hit")
		ctrl.HandleSignal(ctx, c)
	})

	// Clients fetch their STUN/TURN list here before dialing the socket.
	api.GET("/ice-servers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": iceServers})
	})

	// Debug roster: which rooms are live and how many members each holds.
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": orch.Rooms.List()})
	})

	if transcripts != nil {
		api.GET("/rooms/:roomId/transcript", func(c *gin.Context) {
			limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
			if err != nil || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			entries, err := transcripts.Recent(domain.RoomID(c.Param("roomId")), limit)
			if err != nil {
				log.Error().Err(err).Str("module", "adapters.http").Msg("transcript read failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "transcript unavailable"})
				return
			}
			if entries == nil {
				entries = []transcript.Entry{}
			}
			c.JSON(http.StatusOK, gin.H{"messages": entries})
		})
	}

	return r
}
