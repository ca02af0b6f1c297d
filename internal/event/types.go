package event

import (
	"github.com/google/uuid"

	"github.com/Versifine/hearth/internal/protocol"
)

const (
	EventPlayerJoin   = "player.join"
	EventPlayerLeave  = "player.leave"
	EventPlayerMove   = "player.move"
	EventPlayerAction = "player.action"
)

// PlayerEvent identifies one joined session. The UUID comes from the client
// and is not unique across connections; EntityID is.
type PlayerEvent struct {
	EntityID int32
	Username string
	UUID     uuid.UUID
}

// MoveEvent carries the player's full pose after a movement packet. Fields
// the packet did not carry keep their previous values.
type MoveEvent struct {
	Username string
	UUID     uuid.UUID
	X, Y, Z  float64
	Yaw      float32
	Pitch    float32
	OnGround bool
}

type ActionEvent struct {
	Username string
	UUID     uuid.UUID
	Status   int32
	Position protocol.Position
	Face     int8
	Sequence int32
}
