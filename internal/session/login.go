package session

import (
	"github.com/Versifine/hearth/internal/protocol"
)

var loginTable = Table{
	protocol.C2SLoginStart: {
		Params: []protocol.Kind{protocol.KindString, protocol.KindUUID},
		Handle: handleLoginStart,
	},
	protocol.C2SLoginAcknowledged: {
		Handle: handleLoginAcknowledged,
	},
}

func handleLoginStart(s *Session, args Args) (Transition, error) {
	s.player.Name = args.String(0)
	s.player.UUID = args.UUID(1)
	s.log = s.log.With("username", s.player.Name)
	s.log.Info("Login start", "uuid", s.player.UUID)
	return Stay, s.Send(protocol.CreateLoginSuccessPacket(s.player.UUID, s.player.Name))
}

func handleLoginAcknowledged(s *Session, _ Args) (Transition, error) {
	if err := s.Send(protocol.CreateRegistryDataPacket(s.opts.World.RegistryData())); err != nil {
		return Stay, err
	}
	if err := s.Send(protocol.CreateFinishConfigurationPacket()); err != nil {
		return Stay, err
	}
	return SwitchTo(protocol.Configuration), nil
}
