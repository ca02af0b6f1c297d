package session

import (
	"bytes"
	"context"
	"io"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/protocol"
	"github.com/Versifine/hearth/internal/world"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// packets parses every frame written so far.
func (b *syncBuffer) packets(t *testing.T) []*protocol.Packet {
	t.Helper()
	b.mu.Lock()
	data := append([]byte(nil), b.buf.Bytes()...)
	b.mu.Unlock()

	var f protocol.Framer
	f.Feed(data)
	var out []*protocol.Packet
	for {
		frame, err := f.Next()
		require.NoError(t, err)
		if frame == nil {
			break
		}
		p, err := protocol.ParsePacket(frame)
		require.NoError(t, err)
		out = append(out, p)
	}
	require.Zero(t, f.Buffered(), "输出中不应有残缺的帧")
	return out
}

func ids(packets []*protocol.Packet) []int32 {
	out := make([]int32, len(packets))
	for i, p := range packets {
		out[i] = p.ID
	}
	return out
}

type fakeStatus struct{ doc string }

func (f fakeStatus) Status() (string, error) { return f.doc, nil }

func newTestSession(t *testing.T, w io.Writer, bus *event.Bus, interval time.Duration) *Session {
	t.Helper()
	wd, err := world.New(world.DefaultOptions())
	require.NoError(t, err)
	s := New(context.Background(), w, Options{
		Status:            fakeStatus{doc: `{"description":{"text":"test"}}`},
		World:             wd,
		Bus:               bus,
		KeepAliveInterval: interval,
		EntityID:          1,
	})
	t.Cleanup(s.Close)
	return s
}

func frames(packets ...*protocol.Packet) []byte {
	var out []byte
	for _, p := range packets {
		out = append(out, p.Frame()...)
	}
	return out
}

func handshake(next int32) *protocol.Packet {
	return protocol.CreateHandshakePacket(protocol.CurrentProtocolVersion, "localhost", 25565, next)
}

// joinPlay drives a session from Handshaking into Play.
func joinPlay(t *testing.T, s *Session, name string) {
	t.Helper()
	require.NoError(t, s.Receive(frames(
		handshake(protocol.NextStateLogin),
		protocol.CreateLoginStartPacket(name, protocol.GenerateOfflineUUID(name)),
		protocol.CreateLoginAcknowledgedPacket(),
		protocol.CreateAcknowledgeFinishConfigurationPacket(),
	)))
	require.Equal(t, protocol.Play, s.State())
}

func TestHandshakeToLogin(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)

	require.Equal(t, protocol.Handshaking, s.State())
	require.NoError(t, s.Receive(frames(handshake(protocol.NextStateLogin))))
	assert.Equal(t, protocol.Login, s.State())
	assert.Equal(t, int32(protocol.CurrentProtocolVersion), s.ProtocolVersion())
	assert.Empty(t, out.packets(t))
}

func TestInvalidNextState(t *testing.T) {
	s := newTestSession(t, &syncBuffer{}, nil, time.Hour)
	err := s.Receive(frames(handshake(3)))
	require.ErrorIs(t, err, ErrInvalidNextState)
}

func TestStatusRequestAndPing(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)

	// 两个帧在同一次投递中到达
	require.NoError(t, s.Receive(frames(handshake(protocol.NextStateStatus), protocol.CreateStatusRequestPacket())))
	require.NoError(t, s.Receive(frames(protocol.CreatePingRequestPacket(1234))))
	assert.Equal(t, protocol.Status, s.State())

	packets := out.packets(t)
	require.Equal(t, []int32{protocol.S2CStatusResponse, protocol.S2CPongResponse}, ids(packets))
	doc, err := protocol.ReadString(packets[0])
	require.NoError(t, err)
	assert.Equal(t, `{"description":{"text":"test"}}`, doc)
	pong, err := protocol.ReadInt64(packets[1])
	require.NoError(t, err)
	assert.Equal(t, int64(1234), pong)
}

func TestUnknownPacketIgnored(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)
	require.NoError(t, s.Receive(frames(handshake(protocol.NextStateStatus))))

	unknown := protocol.NewPacket(0x7F)
	_, _ = unknown.Write([]byte{1, 2, 3})
	require.NoError(t, s.Receive(frames(unknown)))
	assert.Equal(t, protocol.Status, s.State())
	assert.Empty(t, out.packets(t))
}

func TestTrailingBytesIgnored(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)
	require.NoError(t, s.Receive(frames(handshake(protocol.NextStateStatus))))

	p := protocol.CreatePingRequestPacket(7)
	_ = protocol.WriteByte(p, 0xAA)
	require.NoError(t, s.Receive(frames(p)))
	assert.Equal(t, []int32{protocol.S2CPongResponse}, ids(out.packets(t)))
}

func TestSplitFrameReassembly(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)

	data := frames(handshake(protocol.NextStateStatus), protocol.CreateStatusRequestPacket())
	for i := range data {
		require.NoError(t, s.Receive(data[i:i+1]))
	}
	assert.Equal(t, protocol.Status, s.State())
	assert.Equal(t, []int32{protocol.S2CStatusResponse}, ids(out.packets(t)))
}

func TestMalformedFrame(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"length varint too long", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
		{"zero length", []byte{0x00}},
		{"truncated handshake", []byte{0x03, 0x00, 0xfd, 0x05}},
		{"invalid utf8 address", []byte{0x06, 0x00, 0xfd, 0x05, 0x02, 0xff, 0xfe}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, &syncBuffer{}, nil, time.Hour)
			err := s.Receive(tt.data)
			require.Error(t, err)
			assert.True(t, protocol.IsMalformed(err), "error = %v", err)
		})
	}
}

func TestLoginSequence(t *testing.T) {
	out := &syncBuffer{}
	s := newTestSession(t, out, nil, time.Hour)
	id := protocol.GenerateOfflineUUID("Alex")

	require.NoError(t, s.Receive(frames(
		handshake(protocol.NextStateLogin),
		protocol.CreateLoginStartPacket("Alex", id),
	)))
	packets := out.packets(t)
	require.Equal(t, []int32{protocol.S2CLoginSuccess}, ids(packets))
	success, err := protocol.ParseLoginSuccess(packets[0])
	require.NoError(t, err)
	assert.Equal(t, id, success.UUID)
	assert.Equal(t, "Alex", success.Username)
	assert.Equal(t, "Alex", s.Player().Name)

	require.NoError(t, s.Receive(frames(protocol.CreateLoginAcknowledgedPacket())))
	assert.Equal(t, protocol.Configuration, s.State())
	packets = out.packets(t)
	assert.Equal(t, []int32{protocol.S2CLoginSuccess, protocol.S2CRegistryData, protocol.S2CFinishConfiguration}, ids(packets))
}

func TestEnterPlay(t *testing.T) {
	out := &syncBuffer{}
	bus := event.NewBus()
	var joined []event.PlayerEvent
	bus.Subscribe(event.EventPlayerJoin, func(raw any) { joined = append(joined, raw.(event.PlayerEvent)) })
	s := newTestSession(t, out, bus, time.Hour)

	joinPlay(t, s, "Steve")
	packets := out.packets(t)
	require.Equal(t, []int32{
		protocol.S2CLoginSuccess, protocol.S2CRegistryData, protocol.S2CFinishConfiguration,
		protocol.S2CLogin, protocol.S2CGameEvent, protocol.S2CChunkData,
	}, ids(packets))

	login, err := protocol.ParsePlayLogin(packets[3])
	require.NoError(t, err)
	assert.Equal(t, int32(1), login.EntityID)

	event13, err := protocol.ReadByte(packets[4])
	require.NoError(t, err)
	assert.Equal(t, uint8(protocol.GameEventStartWaitingForChunks), event13)

	chunkX, err := protocol.ReadInt32(packets[5])
	require.NoError(t, err)
	assert.Equal(t, int32(0), chunkX)

	require.Len(t, joined, 1)
	assert.Equal(t, "Steve", joined[0].Username)
	assert.Equal(t, int32(1), joined[0].EntityID)
}

func TestPlayMovementAndAction(t *testing.T) {
	bus := event.NewBus()
	var moves []event.MoveEvent
	var actions []event.ActionEvent
	bus.Subscribe(event.EventPlayerMove, func(raw any) { moves = append(moves, raw.(event.MoveEvent)) })
	bus.Subscribe(event.EventPlayerAction, func(raw any) { actions = append(actions, raw.(event.ActionEvent)) })
	s := newTestSession(t, &syncBuffer{}, bus, time.Hour)
	joinPlay(t, s, "Steve")

	pos := protocol.Position{X: -5, Y: 64, Z: 12}
	require.NoError(t, s.Receive(frames(
		protocol.CreateSetPlayerPositionPacket(1.5, 65, -2.5, true),
		protocol.CreateSetPlayerRotationPacket(90, -45, false),
		protocol.CreateSetPlayerPositionRotationPacket(3, 66, 4, 180, 10, true),
		protocol.CreatePlayerActionPacket(protocol.ActionStartedDigging, pos, 1, 9),
	)))

	require.Len(t, moves, 3)
	assert.Equal(t, 65.0, moves[0].Y)
	assert.Equal(t, float32(90), moves[1].Yaw)
	assert.Equal(t, 1.5, moves[1].X, "仅旋转时坐标保持不变")
	assert.False(t, moves[1].OnGround)

	p := s.Player()
	assert.Equal(t, 3.0, p.X)
	assert.Equal(t, 66.0, p.Y)
	assert.Equal(t, float32(180), p.Yaw)
	assert.Equal(t, float32(10), p.Pitch)

	require.Len(t, actions, 1)
	assert.Equal(t, pos, actions[0].Position)
	assert.Equal(t, int8(1), actions[0].Face)
	assert.Equal(t, int32(9), actions[0].Sequence)
	assert.Equal(t, "Steve", actions[0].Username)
}

func TestPlayerDefaults(t *testing.T) {
	s := newTestSession(t, &syncBuffer{}, nil, time.Hour)
	p := s.Player()
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 90.0, p.Y)
	assert.Equal(t, 0.0, p.Z)
}

func TestKeepAliveStopsOnClose(t *testing.T) {
	out := &syncBuffer{}
	bus := event.NewBus()
	left := 0
	bus.Subscribe(event.EventPlayerLeave, func(any) { left++ })
	s := newTestSession(t, out, bus, 10*time.Millisecond)
	joinPlay(t, s, "Steve")

	countKeepAlive := func() int {
		n := 0
		for _, p := range out.packets(t) {
			if p.ID == protocol.S2CKeepAlive {
				n++
			}
		}
		return n
	}
	require.Eventually(t, func() bool { return countKeepAlive() >= 2 }, 2*time.Second, 5*time.Millisecond)

	// 客户端回应最近一次心跳
	require.NoError(t, s.Receive(frames(protocol.CreateKeepAlivePacket(s.lastPing.Load(), protocol.C2SKeepAlive))))

	s.Close()
	after := countKeepAlive()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, countKeepAlive())
	assert.Equal(t, 1, left)

	s.Close()
	assert.Equal(t, 1, left, "重复 Close 不应再次发布离开事件")
	assert.ErrorIs(t, s.Send(protocol.CreateStatusRequestPacket()), ErrSessionClosed)
	assert.ErrorIs(t, s.Receive([]byte{0x01, 0x00}), ErrSessionClosed)
}

func TestConfigurationKeepAliveReply(t *testing.T) {
	s := newTestSession(t, &syncBuffer{}, nil, time.Hour)
	require.NoError(t, s.Receive(frames(
		handshake(protocol.NextStateLogin),
		protocol.CreateLoginStartPacket("Steve", protocol.GenerateOfflineUUID("Steve")),
		protocol.CreateLoginAcknowledgedPacket(),
		protocol.CreateKeepAlivePacket(99, protocol.C2SConfigKeepAlive),
	)))
	assert.Equal(t, protocol.Configuration, s.State())
}

// chunkWriter appends one byte at a time and yields between bytes, so
// unserialized writers would interleave frames.
type chunkWriter struct {
	buf syncBuffer
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		_, _ = c.buf.Write([]byte{b})
		runtime.Gosched()
	}
	return len(p), nil
}

func TestSendSerialized(t *testing.T) {
	w := &chunkWriter{}
	s := newTestSession(t, w, nil, time.Hour)

	const writers, perWriter = 8, 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_ = s.Send(protocol.CreateStatusResponsePacket(`{"writer":` + string(rune('a'+i)) + `}`))
			}
		}(i)
	}
	wg.Wait()

	packets := w.buf.packets(t)
	require.Len(t, packets, writers*perWriter)
	for _, p := range packets {
		require.Equal(t, int32(protocol.S2CStatusResponse), p.ID)
		doc, err := protocol.ReadString(p)
		require.NoError(t, err)
		require.Len(t, doc, len(`{"writer":a}`))
	}
}

func TestNewStageUnknownState(t *testing.T) {
	_, err := newStage(protocol.State(42))
	require.ErrorIs(t, err, ErrUnknownState)

	for _, st := range []protocol.State{protocol.Handshaking, protocol.Status, protocol.Login, protocol.Configuration, protocol.Play} {
		stage, err := newStage(st)
		require.NoError(t, err)
		assert.Equal(t, st, stage.State())
	}
}

// 客户端包构造函数与各阶段路由表声明的参数必须逐字节一致
func TestRouteParamsMatchBuilders(t *testing.T) {
	id := protocol.GenerateOfflineUUID("Steve")
	tests := []struct {
		name  string
		table Table
		pkt   *protocol.Packet
	}{
		{"handshake", handshakeTable, protocol.CreateHandshakePacket(protocol.CurrentProtocolVersion, "localhost", 25565, protocol.NextStateLogin)},
		{"status request", statusTable, protocol.CreateStatusRequestPacket()},
		{"ping", statusTable, protocol.CreatePingRequestPacket(42)},
		{"login start", loginTable, protocol.CreateLoginStartPacket("Steve", id)},
		{"login acknowledged", loginTable, protocol.CreateLoginAcknowledgedPacket()},
		{"finish configuration", configurationTable, protocol.CreateAcknowledgeFinishConfigurationPacket()},
		{"configuration keep-alive", configurationTable, protocol.CreateKeepAlivePacket(1, protocol.C2SConfigKeepAlive)},
		{"play keep-alive", playTable, protocol.CreateKeepAlivePacket(1, protocol.C2SKeepAlive)},
		{"position", playTable, protocol.CreateSetPlayerPositionPacket(1, 2, 3, true)},
		{"position rotation", playTable, protocol.CreateSetPlayerPositionRotationPacket(1, 2, 3, 4, 5, false)},
		{"rotation", playTable, protocol.CreateSetPlayerRotationPacket(4, 5, true)},
		{"player action", playTable, protocol.CreatePlayerActionPacket(0, protocol.Position{X: 1, Y: 2, Z: 3}, 1, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkt, err := protocol.ParsePacket(tt.pkt.All())
			require.NoError(t, err)
			route, ok := tt.table[pkt.ID]
			require.Truef(t, ok, "no route for 0x%02x", pkt.ID)
			for _, k := range route.Params {
				_, err := k.Decode(pkt)
				require.NoError(t, err, k.String())
			}
			assert.Zero(t, pkt.Len(), "trailing bytes")
		})
	}
}
