package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
	"github.com/nervis/signaling/internal/protocol"
)

func (ctl *Controller) handleJoinRoom(id core.ConnectionID, data []byte) {
	var p protocol.JoinRoom
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad join-room payload")
		return
	}
	if p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("join-room without roomId")
		return
	}

	// Identity claims ride in as-is; the booking/auth service vetted the
	// caller before it ever reached this endpoint.
	identity := domain.Identity{
		UserID:   domain.UserID(p.UserID),
		Username: p.UserName,
		Role:     domain.Role(p.Role),
	}
	log.Info().
		Str("module", "signal").
		Str("conn", string(id)).
		Str("room", p.RoomID).
		Str("user", p.UserID).
		Str("role", p.Role).
		Msg("join-room")
	ctl.Orch.Join(id, domain.RoomID(p.RoomID), identity)
}

func (ctl *Controller) handleLeaveRoom(id core.ConnectionID, data []byte) {
	var p protocol.LeaveRoom
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad leave-room payload")
		return
	}
	if p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("leave-room without roomId")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", p.RoomID).Msg("leave-room")
	ctl.Orch.Leave(id, domain.RoomID(p.RoomID))
}
