package session

import (
	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/protocol"
)

var playTable = Table{
	protocol.C2SKeepAlive: {
		Params: []protocol.Kind{protocol.KindLong},
		Handle: handleKeepAliveReply,
	},
	protocol.C2SSetPlayerPosition: {
		Params: []protocol.Kind{protocol.KindDouble, protocol.KindDouble, protocol.KindDouble, protocol.KindBool},
		Handle: handleSetPlayerPosition,
	},
	protocol.C2SSetPlayerPositionRotation: {
		Params: []protocol.Kind{protocol.KindDouble, protocol.KindDouble, protocol.KindDouble, protocol.KindFloat, protocol.KindFloat, protocol.KindBool},
		Handle: handleSetPlayerPositionRotation,
	},
	protocol.C2SSetPlayerRotation: {
		Params: []protocol.Kind{protocol.KindFloat, protocol.KindFloat, protocol.KindBool},
		Handle: handleSetPlayerRotation,
	},
	protocol.C2SPlayerAction: {
		Params: []protocol.Kind{protocol.KindVarInt, protocol.KindPosition, protocol.KindByte, protocol.KindVarInt},
		Handle: handlePlayerAction,
	},
}

func handleSetPlayerPosition(s *Session, args Args) (Transition, error) {
	s.player.X, s.player.Y, s.player.Z = args.Double(0), args.Double(1), args.Double(2)
	s.player.OnGround = args.Bool(3)
	s.publishMove()
	return Stay, nil
}

func handleSetPlayerPositionRotation(s *Session, args Args) (Transition, error) {
	s.player.X, s.player.Y, s.player.Z = args.Double(0), args.Double(1), args.Double(2)
	s.player.Yaw, s.player.Pitch = args.Float(3), args.Float(4)
	s.player.OnGround = args.Bool(5)
	s.publishMove()
	return Stay, nil
}

func handleSetPlayerRotation(s *Session, args Args) (Transition, error) {
	s.player.Yaw, s.player.Pitch = args.Float(0), args.Float(1)
	s.player.OnGround = args.Bool(2)
	s.publishMove()
	return Stay, nil
}

func handlePlayerAction(s *Session, args Args) (Transition, error) {
	evt := event.ActionEvent{
		Username: s.player.Name,
		UUID:     s.player.UUID,
		Status:   args.VarInt(0),
		Position: args.Position(1),
		Face:     args.Byte(2),
		Sequence: args.VarInt(3),
	}
	s.log.Debug("Player action", "status", evt.Status, "position", evt.Position, "face", evt.Face, "sequence", evt.Sequence)
	s.opts.Bus.Publish(event.EventPlayerAction, evt)
	return Stay, nil
}

func (s *Session) publishMove() {
	p := s.player
	s.opts.Bus.Publish(event.EventPlayerMove, event.MoveEvent{
		Username: p.Name,
		UUID:     p.UUID,
		X:        p.X,
		Y:        p.Y,
		Z:        p.Z,
		Yaw:      p.Yaw,
		Pitch:    p.Pitch,
		OnGround: p.OnGround,
	})
}
