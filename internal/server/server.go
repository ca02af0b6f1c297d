// Package server 接受 TCP 连接并把读到的字节交给每个连接的会话状态机
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/session"
)

const readBufferSize = 4096

type Options struct {
	Addr              string
	ReadTimeout       time.Duration
	KeepAliveInterval time.Duration
	Quota             *Quota
}

type Server struct {
	opts   Options
	status session.StatusProvider
	world  session.World
	bus    *event.Bus
	log    *slog.Logger

	nextEntityID atomic.Int32
	conns        atomic.Int32
}

func NewServer(opts Options, status session.StatusProvider, world session.World, bus *event.Bus) *Server {
	return &Server{
		opts:   opts,
		status: status,
		world:  world,
		bus:    bus,
		log:    slog.Default(),
	}
}

// Connections returns the number of open connections.
func (s *Server) Connections() int32 { return s.conns.Load() }

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. Cancelling ctx closes
// the listener and every open connection; Serve returns once all
// connection goroutines have exited.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.log.Info("Starting server", "addr", ln.Addr().String())
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()
		s.log.Info("Shutting down server")
		return ln.Close()
	})

	eg.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				s.log.Error("Error accepting connection", "error", err)
				return err
			}
			if s.opts.Quota.Blocked(conn.RemoteAddr()) {
				s.log.Info("Connection rate limited", "remote", conn.RemoteAddr().String())
				_ = conn.Close()
				continue
			}
			eg.Go(func() error {
				s.handleConnection(ctx, conn)
				return nil
			})
		}
	})

	err := eg.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	s.log.Info("Server stopped")
	return err
}

func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	log := s.log.With("remote", conn.RemoteAddr().String())
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	s.conns.Inc()
	defer s.conns.Dec()

	sess := session.New(ctx, conn, session.Options{
		Status:            s.status,
		World:             s.world,
		Bus:               s.bus,
		KeepAliveInterval: s.opts.KeepAliveInterval,
		EntityID:          s.nextEntityID.Inc(),
		Logger:            log,
	})
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer func() {
		stop()
		// 先关闭连接，阻塞中的写入才会返回
		_ = conn.Close()
		sess.Close()
		log.Info("Connection closed")
	}()
	log.Info("Connection accepted")

	buf := make([]byte, readBufferSize)
	for {
		if s.opts.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}
		n, err := conn.Read(buf)
		if n > 0 {
			if rerr := sess.Receive(buf[:n]); rerr != nil {
				log.Warn("Closing connection", "state", sess.State(), "error", rerr)
				return
			}
		}
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			case errors.Is(err, os.ErrDeadlineExceeded):
				log.Info("Read timeout", "state", sess.State())
			default:
				log.Warn("Read failed", "error", err)
			}
			return
		}
	}
}
