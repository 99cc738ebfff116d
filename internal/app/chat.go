package app

import (
	"github.com/nervis/signaling/internal/domain"
	"github.com/nervis/signaling/internal/protocol"
)

// chatTimeLayout matches the millisecond ISO-8601 timestamps the web client
// already renders ("Z" suffix, UTC).
const chatTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Chat fans a text message out to every current member of room, the sender
// included, stamped with the server time. Nothing is deduplicated, acked or
// retained; a member that disconnected a moment ago simply misses it.
func (o *Orchestrator) Chat(room domain.RoomID, from domain.Identity, text string) {
	ts := o.now().UTC().Format(chatTimeLayout)
	msg := protocol.ChatEvent{
		Type:      protocol.TypeChatMessage,
		UserID:    string(from.UserID),
		UserName:  from.Username,
		Message:   text,
		Timestamp: ts,
	}
	for _, m := range o.Rooms.Members(room) {
		o.send(m.Signal, msg)
	}
	if o.Transcript != nil {
		o.Transcript.Append(room, from, text, ts)
	}
}
