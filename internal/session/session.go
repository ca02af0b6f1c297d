// Package session 负责单个连接的协议状态机：帧重组、按阶段分发和阶段切换
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/protocol"
)

// StatusProvider produces the status JSON document sent in the Status stage.
type StatusProvider interface {
	Status() (string, error)
}

// World supplies the pre-built payloads sent while a player joins.
type World interface {
	RegistryData() []byte
	JoinGame(entityID int32) protocol.PlayLogin
	SpawnChunk() (chunkX, chunkZ int32, sections []protocol.ChunkSection)
}

type Options struct {
	Status            StatusProvider
	World             World
	Bus               *event.Bus
	KeepAliveInterval time.Duration
	EntityID          int32
	Logger            *slog.Logger
}

// Player is the session data that survives stage changes.
type Player struct {
	Name     string
	UUID     uuid.UUID
	X, Y, Z  float64
	Yaw      float32
	Pitch    float32
	OnGround bool
}

// Session is the protocol state machine of one connection. Receive must be
// called from a single goroutine; Send may be called from any goroutine.
type Session struct {
	log  *slog.Logger
	opts Options

	framer          protocol.Framer
	stage           *Stage
	player          Player
	protocolVersion int32

	mu sync.Mutex // serializes writes to w
	w  io.Writer

	ctx       context.Context
	cancel    context.CancelFunc
	keepAlive sync.Once
	wg        sync.WaitGroup
	closed    atomic.Bool
	joined    atomic.Bool
	lastPing  atomic.Int64
}

func New(ctx context.Context, w io.Writer, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.KeepAliveInterval <= 0 {
		opts.KeepAliveInterval = 15 * time.Second
	}
	ctx, cancel := context.WithCancel(ctx)
	stage, _ := newStage(protocol.Handshaking)
	return &Session{
		log:    opts.Logger,
		opts:   opts,
		stage:  stage,
		player: Player{X: 0, Y: 90, Z: 0},
		w:      w,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Session) State() protocol.State { return s.stage.State() }

// Player returns a copy of the session's player data. Like Receive it must
// not run concurrently with frame processing.
func (s *Session) Player() Player { return s.player }

func (s *Session) ProtocolVersion() int32 { return s.protocolVersion }

// Receive feeds one transport delivery. Every complete frame it completes is
// dispatched in arrival order before Receive returns; a partial trailing
// frame waits for the next delivery. Any returned error is fatal for the
// connection.
func (s *Session) Receive(data []byte) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.framer.Feed(data)
	for {
		frame, err := s.framer.Next()
		if err != nil {
			return err
		}
		if frame == nil {
			return nil
		}
		if err := s.HandleFrame(frame); err != nil {
			return err
		}
	}
}

// HandleFrame dispatches one complete frame body (id + payload) to the
// current stage and applies the resulting transition.
func (s *Session) HandleFrame(frame []byte) error {
	pkt, err := protocol.ParsePacket(frame)
	if err != nil {
		return err
	}
	transition, err := s.stage.Dispatch(s, pkt)
	if err != nil {
		return err
	}
	next, ok := transition.Next()
	if !ok {
		return nil
	}
	stage, err := newStage(next)
	if err != nil {
		return err
	}
	s.log.Debug("State changed", "from", s.stage.State(), "to", next)
	s.stage = stage
	if next == protocol.Play && s.joined.CompareAndSwap(false, true) {
		s.log.Info("Player joined", "username", s.player.Name, "uuid", s.player.UUID)
		s.opts.Bus.Publish(event.EventPlayerJoin, event.PlayerEvent{EntityID: s.opts.EntityID, Username: s.player.Name, UUID: s.player.UUID})
	}
	return nil
}

// Send writes one packet. Writes from handlers and from the keep-alive timer
// are serialized so frames never interleave.
func (s *Session) Send(p *protocol.Packet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return protocol.WritePacket(s.w, p)
}

// Close stops the keep-alive timer; later Receive and Send calls fail with
// ErrSessionClosed. It is safe to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.cancel()
	s.wg.Wait()
	if s.joined.Load() {
		s.log.Info("Player left", "username", s.player.Name, "uuid", s.player.UUID)
		s.opts.Bus.Publish(event.EventPlayerLeave, event.PlayerEvent{EntityID: s.opts.EntityID, Username: s.player.Name, UUID: s.player.UUID})
	}
}
