package session

import (
	"fmt"

	"github.com/Versifine/hearth/internal/protocol"
)

var statusTable = Table{
	protocol.C2SStatusRequest: {
		Handle: handleStatusRequest,
	},
	protocol.C2SPingRequest: {
		Params: []protocol.Kind{protocol.KindLong},
		Handle: handlePingRequest,
	},
}

func handleStatusRequest(s *Session, _ Args) (Transition, error) {
	if s.opts.Status == nil {
		return Stay, fmt.Errorf("no status provider configured")
	}
	doc, err := s.opts.Status.Status()
	if err != nil {
		return Stay, fmt.Errorf("build status: %w", err)
	}
	return Stay, s.Send(protocol.CreateStatusResponsePacket(doc))
}

func handlePingRequest(s *Session, args Args) (Transition, error) {
	return Stay, s.Send(protocol.CreatePongResponsePacket(args.Long(0)))
}
