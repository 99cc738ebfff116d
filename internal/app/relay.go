package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/protocol"
)

// Relay forwards one negotiation message (offer, answer or ice-candidate) to
// the named target connection, tagged with the sender's id. The payload is
// never inspected or altered.
//
// A target that is not currently registered means the message is silently
// dropped; the sender is not told. The relay also does not check that sender
// and target share a room — the target only has to exist. Admission control
// happens upstream, and clients only learn connection ids through presence
// messages in their own room.
func (o *Orchestrator) Relay(msgType string, sender, target core.ConnectionID, payload json.RawMessage) {
	sig, ok := o.Registry.Get(target)
	if !ok {
		log.Debug().
			Str("module", "app.relay").
			Str("type", msgType).
			Str("from", string(sender)).
			Str("target", string(target)).
			Msg("relay target not registered, dropping")
		return
	}
	o.send(sig, protocol.NewSignalForward(msgType, payload, string(sender)))
}
