package session

import (
	"fmt"

	"github.com/Versifine/hearth/internal/protocol"
)

// HandlerFunc handles one decoded packet. It may send packets through the
// session and returns the transition to apply afterwards.
type HandlerFunc func(s *Session, args Args) (Transition, error)

// Route is the decode schema and handler for one packet id.
type Route struct {
	Params []protocol.Kind
	Handle HandlerFunc
}

// Table maps packet ids to routes. Tables are package-level and read-only.
type Table map[int32]Route

// Transition is a handler's next-stage signal.
type Transition struct {
	next   protocol.State
	change bool
}

// Stay keeps the current stage.
var Stay = Transition{}

func SwitchTo(state protocol.State) Transition {
	return Transition{next: state, change: true}
}

func (t Transition) Next() (protocol.State, bool) {
	return t.next, t.change
}

// Stage is one protocol stage: its identity and its dispatch table.
type Stage struct {
	state protocol.State
	table Table
}

func newStage(state protocol.State) (*Stage, error) {
	var table Table
	switch state {
	case protocol.Handshaking:
		table = handshakeTable
	case protocol.Status:
		table = statusTable
	case protocol.Login:
		table = loginTable
	case protocol.Configuration:
		table = configurationTable
	case protocol.Play:
		table = playTable
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownState, int(state))
	}
	return &Stage{state: state, table: table}, nil
}

func (st *Stage) State() protocol.State { return st.state }

// Dispatch decodes pkt according to its route and runs the handler. Packets
// without a route are logged and ignored.
func (st *Stage) Dispatch(s *Session, pkt *protocol.Packet) (Transition, error) {
	route, ok := st.table[pkt.ID]
	if !ok {
		s.log.Debug("Unhandled packet ignored", "state", st.state, "packetID", fmt.Sprintf("0x%02x", pkt.ID), "length", len(pkt.Payload()))
		return Stay, nil
	}
	args := make(Args, len(route.Params))
	for i, kind := range route.Params {
		v, err := kind.Decode(pkt)
		if err != nil {
			return Stay, fmt.Errorf("decode %s packet 0x%02x argument %d (%s): %w", st.state, pkt.ID, i, kind, err)
		}
		args[i] = v
	}
	if rest := pkt.Len(); rest > 0 {
		s.log.Debug("Trailing bytes ignored", "state", st.state, "packetID", fmt.Sprintf("0x%02x", pkt.ID), "bytes", rest)
	}
	return route.Handle(s, args)
}
