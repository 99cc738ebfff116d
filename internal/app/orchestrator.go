package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
)

// ChatSink receives a best-effort copy of each broadcast chat message.
// Implementations must not block the caller; delivery failures are theirs to
// log, never to surface back into the event path.
type ChatSink interface {
	Append(room domain.RoomID, from domain.Identity, text, timestamp string)
}

// Orchestrator wires the registry and the room directory and owns every
// inbound event: connect, join, leave, relay, chat, disconnect. Membership
// events (join/leave/disconnect) are serialized under one mutex so that a
// joiner's roster snapshot and the matching user-joined fan-out are applied
// as one unit, never interleaved with another membership event.
type Orchestrator struct {
	Registry   *Registry
	Rooms      *Directory
	Transcript ChatSink // optional

	// Clock overrides chat timestamping in tests. Nil means time.Now.
	Clock func() time.Time

	mu sync.Mutex
}

// Connect registers a freshly opened channel.
func (o *Orchestrator) Connect(id core.ConnectionID, sig core.SignalConnection, cancel context.CancelFunc) {
	o.Registry.Register(id, sig, cancel)
}

// Join places the connection into room under the identity it claims, then
// notifies: the joiner gets the prior roster, everyone already present gets
// user-joined. If the connection was in another room it leaves there first
// and that room is told user-left.
func (o *Orchestrator) Join(id core.ConnectionID, room domain.RoomID, identity domain.Identity) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sig, ok := o.Registry.Get(id)
	if !ok {
		log.Warn().Str("module", "app.orchestrator").Str("conn", string(id)).Msg("join from unregistered connection")
		return
	}

	m := Member{ConnectionID: id, Identity: identity, Signal: sig}
	others, prev := o.Rooms.Join(room, m)
	o.Registry.SetMembership(id, identity, room)

	if prev != nil {
		o.notifyLeft(prev.Remaining, prev.Identity)
	}
	o.notifyRoster(m, others)
	o.notifyJoined(others, m)
}

// Leave removes the connection from room and tells the remaining members.
// Leaving a room one never joined is a silent no-op.
func (o *Orchestrator) Leave(id core.ConnectionID, room domain.RoomID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	dep, ok := o.Rooms.Leave(id, room)
	if !ok {
		return
	}
	o.Registry.ClearRoom(id)
	o.notifyLeft(dep.Remaining, dep.Identity)
}

// Disconnect is the forced-leave cascade for a closed channel: whatever room
// the connection occupied is left (with user-left fan-out), the connection's
// context is cancelled so its pumps and child context are released, then the
// record is dropped.
func (o *Orchestrator) Disconnect(id core.ConnectionID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if room, ok := o.Registry.RoomOf(id); ok {
		if dep, ok := o.Rooms.Leave(id, room); ok {
			o.notifyLeft(dep.Remaining, dep.Identity)
		}
	}
	o.Registry.Cancel(id)
	o.Registry.Deregister(id)
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// send marshals v and enqueues it on the connection. A full send buffer or a
// closed connection only drops this one frame; the event path never blocks.
func (o *Orchestrator) send(sig core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.orchestrator").Msg("marshal outbound message")
		return
	}
	if err := sig.TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "app.orchestrator").Msg("dropped outbound message")
	}
}
