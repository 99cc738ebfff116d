package domain

// RoomID names one call session. It is derived upstream (typically from a
// booking record, e.g. "booking-42"); any string a client names is a valid
// room on first join.
type RoomID string
