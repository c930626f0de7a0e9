package game

import "errors"

var (
	ErrRoomFull   = errors.New("room full")
	ErrRoomClosed = errors.New("room closed")
)

// ErrRoomFullMessage goes over the wire verbatim; clients show it as-is.
const ErrRoomFullMessage = "Room is full (max 16 players)."
