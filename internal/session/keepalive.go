package session

import (
	"time"

	"github.com/Versifine/hearth/internal/protocol"
)

// startKeepAlive starts the keep-alive timer once per session. It keeps
// running across stage changes until Close.
func (s *Session) startKeepAlive() {
	s.keepAlive.Do(func() {
		s.wg.Add(1)
		go s.keepAliveLoop(s.opts.KeepAliveInterval)
	})
}

func (s *Session) keepAliveLoop(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			id := time.Now().UnixMilli()
			s.lastPing.Store(id)
			if err := s.Send(protocol.CreateKeepAlivePacket(id, protocol.S2CKeepAlive)); err != nil {
				s.log.Debug("Keep-alive write failed", "error", err)
				return
			}
		}
	}
}

// keepAliveReply logs the round trip of a keep-alive the client echoed.
func (s *Session) keepAliveReply(id int64) {
	if id != s.lastPing.Load() {
		s.log.Debug("Stale keep-alive reply", "id", id)
		return
	}
	s.log.Debug("Keep-alive reply", "rtt", time.Since(time.UnixMilli(id)))
}
