package app

import (
	"github.com/nervis/signaling/internal/domain"
	"github.com/nervis/signaling/internal/protocol"
)

// notifyRoster tells a joiner who was already in the room. The snapshot is
// exactly the membership at the moment the join was applied, excluding the
// joiner itself.
func (o *Orchestrator) notifyRoster(joiner Member, others []Member) {
	users := make([]protocol.RoomUser, 0, len(others))
	for _, m := range others {
		users = append(users, protocol.RoomUser{
			ConnectionID: string(m.ConnectionID),
			UserID:       string(m.Identity.UserID),
			UserName:     m.Identity.Username,
			Role:         string(m.Identity.Role),
		})
	}
	o.send(joiner.Signal, protocol.RoomUsers{Type: protocol.TypeRoomUsers, Users: users})
}

// notifyJoined announces the new member to everyone who was already present.
func (o *Orchestrator) notifyJoined(others []Member, joiner Member) {
	msg := protocol.UserJoined{
		Type:         protocol.TypeUserJoined,
		UserID:       string(joiner.Identity.UserID),
		UserName:     joiner.Identity.Username,
		Role:         string(joiner.Identity.Role),
		ConnectionID: string(joiner.ConnectionID),
	}
	for _, m := range others {
		o.send(m.Signal, msg)
	}
}

// notifyLeft announces a departure to the members still in the room. When
// the room died with its last member there is nobody left to tell.
func (o *Orchestrator) notifyLeft(remaining []Member, departed domain.Identity) {
	msg := protocol.UserLeft{
		Type:     protocol.TypeUserLeft,
		UserID:   string(departed.UserID),
		UserName: departed.Username,
	}
	for _, m := range remaining {
		o.send(m.Signal, msg)
	}
}
