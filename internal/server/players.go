package server

import (
	"sort"
	"sync"

	"go.uber.org/atomic"

	"github.com/Versifine/hearth/internal/event"
	"github.com/Versifine/hearth/internal/status"
)

// PlayerTracker counts players in the Play stage from join and leave events.
// Entries are keyed by entity id, so two sessions claiming the same UUID are
// both listed.
type PlayerTracker struct {
	online atomic.Int32

	mu      sync.RWMutex
	players map[int32]event.PlayerEvent
}

func NewPlayerTracker(bus *event.Bus) *PlayerTracker {
	t := &PlayerTracker{players: make(map[int32]event.PlayerEvent)}
	bus.Subscribe(event.EventPlayerJoin, t.onJoin)
	bus.Subscribe(event.EventPlayerLeave, t.onLeave)
	return t
}

func (t *PlayerTracker) onJoin(raw any) {
	evt, ok := raw.(event.PlayerEvent)
	if !ok {
		return
	}
	t.mu.Lock()
	t.players[evt.EntityID] = evt
	t.online.Store(int32(len(t.players)))
	t.mu.Unlock()
}

func (t *PlayerTracker) onLeave(raw any) {
	evt, ok := raw.(event.PlayerEvent)
	if !ok {
		return
	}
	t.mu.Lock()
	delete(t.players, evt.EntityID)
	t.online.Store(int32(len(t.players)))
	t.mu.Unlock()
}

func (t *PlayerTracker) Online() int32 { return t.online.Load() }

// Sample returns up to limit online players ordered by name.
func (t *PlayerTracker) Sample(limit int) []status.Sample {
	t.mu.RLock()
	out := make([]status.Sample, 0, len(t.players))
	for _, p := range t.players {
		out = append(out, status.Sample{Name: p.Username, ID: p.UUID.String()})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
