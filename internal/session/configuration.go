package session

import (
	"github.com/Versifine/hearth/internal/protocol"
)

var configurationTable = Table{
	protocol.C2SConfigAcknowledgeFinish: {
		Handle: handleAcknowledgeFinish,
	},
	protocol.C2SConfigKeepAlive: {
		Params: []protocol.Kind{protocol.KindLong},
		Handle: handleKeepAliveReply,
	},
}

// handleAcknowledgeFinish sends everything a client needs to enter the world:
// join game, the "waiting for chunks" game event and the spawn chunk.
func handleAcknowledgeFinish(s *Session, _ Args) (Transition, error) {
	s.startKeepAlive()

	if err := s.Send(protocol.CreatePlayLoginPacket(s.opts.World.JoinGame(s.opts.EntityID))); err != nil {
		return Stay, err
	}
	if err := s.Send(protocol.CreateGameEventPacket(protocol.GameEventStartWaitingForChunks, 0)); err != nil {
		return Stay, err
	}
	chunkX, chunkZ, sections := s.opts.World.SpawnChunk()
	chunk, err := protocol.CreateChunkDataPacket(chunkX, chunkZ, protocol.NewCompound(""), sections)
	if err != nil {
		return Stay, err
	}
	if err := s.Send(chunk); err != nil {
		return Stay, err
	}
	return SwitchTo(protocol.Play), nil
}

func handleKeepAliveReply(s *Session, args Args) (Transition, error) {
	s.keepAliveReply(args.Long(0))
	return Stay, nil
}
