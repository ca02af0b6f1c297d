package protocol

import "fmt"

// State is a protocol stage. The values of Status and Login match the
// handshake's requested next-state field.
type State int

const (
	Handshaking   State = -1
	Play          State = 0
	Status        State = 1
	Login         State = 2
	Configuration State = 3
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshaking"
	case Play:
		return "Play"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Configuration:
		return "Configuration"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
