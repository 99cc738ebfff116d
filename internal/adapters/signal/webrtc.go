package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/protocol"
)

// handleSignal covers offer, answer and ice-candidate, which share a shape:
// a target connection id plus an opaque payload the relay never decodes.
func (ctl *Controller) handleSignal(id core.ConnectionID, msgType string, data []byte) {
	var p protocol.Signal
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Str("type", msgType).Msg("bad signaling payload")
		return
	}
	if p.TargetConnectionID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Str("type", msgType).Msg("signaling message without target")
		return
	}
	payload := p.Payload(msgType)
	if payload == nil {
		log.Warn().Str("module", "signal").Str("conn", string(id)).Str("type", msgType).Msg("signaling message without payload")
		return
	}
	ctl.Orch.Relay(msgType, id, core.ConnectionID(p.TargetConnectionID), payload)
}
