package session

import (
	"fmt"

	"github.com/Versifine/hearth/internal/protocol"
)

var handshakeTable = Table{
	protocol.C2SHandshake: {
		Params: []protocol.Kind{protocol.KindVarInt, protocol.KindString, protocol.KindUShort, protocol.KindVarInt},
		Handle: handleHandshake,
	},
}

func handleHandshake(s *Session, args Args) (Transition, error) {
	protocolVersion, serverAddress, serverPort, nextState := args.VarInt(0), args.String(1), args.UShort(2), args.VarInt(3)
	s.log.Info("Handshake", "protocolVersion", protocolVersion, "serverAddress", serverAddress, "serverPort", serverPort, "nextState", nextState)
	s.protocolVersion = protocolVersion

	switch nextState {
	case protocol.NextStateStatus:
		return SwitchTo(protocol.Status), nil
	case protocol.NextStateLogin:
		return SwitchTo(protocol.Login), nil
	default:
		return Stay, fmt.Errorf("%w: %d", ErrInvalidNextState, nextState)
	}
}
