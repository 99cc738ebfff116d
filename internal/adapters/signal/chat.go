package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
	"github.com/nervis/signaling/internal/protocol"
)

func (ctl *Controller) handleChat(id core.ConnectionID, data []byte) {
	var p protocol.ChatMessage
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad chat-message payload")
		return
	}
	if p.RoomID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Msg("chat-message without roomId")
		return
	}
	from := domain.Identity{
		UserID:   domain.UserID(p.UserID),
		Username: p.UserName,
	}
	ctl.Orch.Chat(domain.RoomID(p.RoomID), from, p.Message)
}
