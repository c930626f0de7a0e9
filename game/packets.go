package game

import "encoding/json"

const (
	PacketJoin  = "join"
	PacketTurn  = "turn"
	PacketLeave = "leave"
	PacketState = "state"
	PacketError = "error"
)

// ClientPacket is the single inbound message shape; Type selects which
// fields matter. Unknown fields are ignored, unknown types dropped.
type ClientPacket struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId,omitempty"`
	Username  string `json:"username,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type ServerPacket struct {
	Type    string    `json:"type"`
	State   *Snapshot `json:"state,omitempty"`
	Message string    `json:"message,omitempty"`
}

func encodeState(s *Snapshot) []byte {
	data, _ := json.Marshal(ServerPacket{Type: PacketState, State: s})
	return data
}

func encodeError(message string) []byte {
	data, _ := json.Marshal(ServerPacket{Type: PacketError, Message: message})
	return data
}
