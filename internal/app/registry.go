package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
)

type connEntry struct {
	Signal   core.SignalConnection
	Identity domain.Identity
	Room     domain.RoomID
	Cancel   context.CancelFunc
}

// Registry tracks every currently-open signaling channel. It is the single
// owner of connection records; room membership lives in the Directory and is
// mirrored here only as the connection's current room.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnectionID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.ConnectionID]*connEntry)}
}

// Register records a live connection. No room membership is implied.
func (r *Registry) Register(id core.ConnectionID, sig core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection registered")
}

// Deregister drops the record. Deregistering an unknown id is a no-op; the
// room-leave cascade is the orchestrator's job, not the registry's.
func (r *Registry) Deregister(id core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("connection deregistered")
}

// Get returns the live transport endpoint for id, if any.
func (r *Registry) Get(id core.ConnectionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.Signal, true
}

// SetMembership records the identity claimed on join and the room entered.
func (r *Registry) SetMembership(id core.ConnectionID, identity domain.Identity, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Identity = identity
		e.Room = room
	}
}

// ClearRoom resets the connection's current room after a leave.
func (r *Registry) ClearRoom(id core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Room = ""
	}
}

// RoomOf reports the room the connection currently occupies, if any.
func (r *Registry) RoomOf(id core.ConnectionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

// Cancel fires the connection's cancel func, tearing down its pumps.
func (r *Registry) Cancel(id core.ConnectionID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}

// Count reports the number of live connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
