// Package protocol defines the JSON messages exchanged on the signaling
// socket. Every message carries a "type" field used for dispatch; the
// offer/answer/candidate payloads are opaque blobs that the server forwards
// without ever decoding.
package protocol

import "encoding/json"

// Client -> server message types.
const (
	TypeJoinRoom     = "join-room"
	TypeLeaveRoom    = "leave-room"
	TypeOffer        = "offer"
	TypeAnswer       = "answer"
	TypeICECandidate = "ice-candidate"
	TypeChatMessage  = "chat-message"
)

// Server -> client message types. Offer/answer/candidate keep the same type
// string in both directions.
const (
	TypeRoomUsers  = "room-users"
	TypeUserJoined = "user-joined"
	TypeUserLeft   = "user-left"
)

// Envelope is the minimal shape every inbound message must have.
type Envelope struct {
	Type string `json:"type"`
}

type JoinRoom struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

type LeaveRoom struct {
	RoomID string `json:"roomId"`
}

// Signal is an inbound offer, answer or ice-candidate. Exactly one of the
// payload fields is set, matching the message type.
type Signal struct {
	RoomID             string          `json:"roomId"`
	TargetConnectionID string          `json:"targetConnectionId"`
	Offer              json.RawMessage `json:"offer,omitempty"`
	Answer             json.RawMessage `json:"answer,omitempty"`
	Candidate          json.RawMessage `json:"candidate,omitempty"`
}

// Payload returns the opaque blob for the given message type, or nil when
// the expected field is absent.
func (s Signal) Payload(msgType string) json.RawMessage {
	switch msgType {
	case TypeOffer:
		return s.Offer
	case TypeAnswer:
		return s.Answer
	case TypeICECandidate:
		return s.Candidate
	}
	return nil
}

type ChatMessage struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

// RoomUser is one roster entry in a room-users message.
type RoomUser struct {
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	Role         string `json:"role"`
}

type RoomUsers struct {
	Type  string     `json:"type"`
	Users []RoomUser `json:"users"`
}

type UserJoined struct {
	Type         string `json:"type"`
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	Role         string `json:"role"`
	ConnectionID string `json:"connectionId"`
}

type UserLeft struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// SignalForward is an outbound offer/answer/ice-candidate. The payload rides
// in the field named after the type, untouched, plus the sender's id.
type SignalForward struct {
	Type             string          `json:"type"`
	Offer            json.RawMessage `json:"offer,omitempty"`
	Answer           json.RawMessage `json:"answer,omitempty"`
	Candidate        json.RawMessage `json:"candidate,omitempty"`
	FromConnectionID string          `json:"fromConnectionId"`
}

// NewSignalForward places payload into the field matching msgType.
func NewSignalForward(msgType string, payload json.RawMessage, from string) SignalForward {
	f := SignalForward{Type: msgType, FromConnectionID: from}
	switch msgType {
	case TypeOffer:
		f.Offer = payload
	case TypeAnswer:
		f.Answer = payload
	case TypeICECandidate:
		f.Candidate = payload
	}
	return f
}

type ChatEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
