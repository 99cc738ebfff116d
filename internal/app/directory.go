package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nervis/signaling/internal/core"
	"github.com/nervis/signaling/internal/domain"
)

// Member is one room occupant: the claimed identity plus the live channel
// used to reach it.
type Member struct {
	ConnectionID core.ConnectionID
	Identity     domain.Identity
	Signal       core.SignalConnection
}

// Departure describes a membership that was just removed, together with the
// members still present who need a user-left notification.
type Departure struct {
	Room      domain.RoomID
	Identity  domain.Identity
	Remaining []Member
}

// RoomInfo is a read-only view for the rooms listing endpoint.
type RoomInfo struct {
	ID          domain.RoomID `json:"roomId"`
	MemberCount int           `json:"memberCount"`
}

// Directory maps each room id to its current member set. Rooms are created
// lazily on first join and deleted the moment they become empty; a room is
// present iff it has at least one member.
//
// One directory-wide mutex linearizes every membership mutation. Per-room
// locking buys nothing at interview-call scale (two members a room).
type Directory struct {
	mu     sync.Mutex
	rooms  map[domain.RoomID]map[core.ConnectionID]Member
	roomOf map[core.ConnectionID]domain.RoomID
}

func NewDirectory() *Directory {
	return &Directory{
		rooms:  make(map[domain.RoomID]map[core.ConnectionID]Member),
		roomOf: make(map[core.ConnectionID]domain.RoomID),
	}
}

// Join inserts m into room, creating the room if absent. It returns the
// members that were already present (never including m itself) as the roster
// snapshot at the moment of insertion.
//
// A connection is a member of at most one room: if m was in a different room
// it is first removed there, and that removal is reported via prev so the
// caller can notify the old room. Re-joining the same room refreshes the
// stored identity and is otherwise idempotent.
func (d *Directory) Join(room domain.RoomID, m Member) (others []Member, prev *Departure) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cur, ok := d.roomOf[m.ConnectionID]; ok && cur != room {
		if dep, ok := d.removeLocked(m.ConnectionID, cur); ok {
			prev = &dep
		}
	}

	members, ok := d.rooms[room]
	if !ok {
		members = make(map[core.ConnectionID]Member)
		d.rooms[room] = members
		log.Info().Str("module", "app.directory").Str("room", string(room)).Msg("room created")
	}

	others = make([]Member, 0, len(members))
	for id, other := range members {
		if id != m.ConnectionID {
			others = append(others, other)
		}
	}

	members[m.ConnectionID] = m
	d.roomOf[m.ConnectionID] = room
	log.Info().
		Str("module", "app.directory").
		Str("room", string(room)).
		Str("conn", string(m.ConnectionID)).
		Str("role", string(m.Identity.Role)).
		Int("members", len(members)).
		Msg("member joined")
	return others, prev
}

// Leave removes the membership if present and reports who left and who
// remains. Leaving a room one is not a member of is a no-op, not an error.
func (d *Directory) Leave(id core.ConnectionID, room domain.RoomID) (Departure, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeLocked(id, room)
}

func (d *Directory) removeLocked(id core.ConnectionID, room domain.RoomID) (Departure, bool) {
	members, ok := d.rooms[room]
	if !ok {
		return Departure{}, false
	}
	m, ok := members[id]
	if !ok {
		return Departure{}, false
	}
	delete(members, id)
	delete(d.roomOf, id)

	dep := Departure{Room: room, Identity: m.Identity}
	if len(members) == 0 {
		delete(d.rooms, room)
		log.Info().Str("module", "app.directory").Str("room", string(room)).Msg("room deleted")
	} else {
		dep.Remaining = make([]Member, 0, len(members))
		for _, rest := range members {
			dep.Remaining = append(dep.Remaining, rest)
		}
	}
	log.Info().
		Str("module", "app.directory").
		Str("room", string(room)).
		Str("conn", string(id)).
		Int("members", len(members)).
		Msg("member left")
	return dep, true
}

// Members returns a snapshot of the room's current occupants. A missing room
// yields an empty slice.
func (d *Directory) Members(room domain.RoomID) []Member {
	d.mu.Lock()
	defer d.mu.Unlock()
	members := d.rooms[room]
	out := make([]Member, 0, len(members))
	for _, m := range members {
		out = append(out, m)
	}
	return out
}

// RoomOf reports which room the connection is currently a member of.
func (d *Directory) RoomOf(id core.ConnectionID) (domain.RoomID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	room, ok := d.roomOf[id]
	return room, ok
}

// List returns every live room with its member count.
func (d *Directory) List() []RoomInfo {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]RoomInfo, 0, len(d.rooms))
	for id, members := range d.rooms {
		out = append(out, RoomInfo{ID: id, MemberCount: len(members)})
	}
	return out
}
