package server

import (
	"net"
	"sync"

	"github.com/golang/groupcache/lru"
	"golang.org/x/time/rate"
)

// Quota limits new connections per address range. Addresses that differ
// only in the last byte share eps connections per second; limiters are kept
// in an LRU of maxEntries ranges.
type Quota struct {
	eps   float32
	burst int
	mu    sync.Mutex // protects cache
	cache *lru.Cache
}

func NewQuota(eventsPerSecond float32, burst, maxEntries int) *Quota {
	return &Quota{
		eps:   eventsPerSecond,
		burst: burst,
		cache: lru.New(maxEntries),
	}
}

// Blocked reports whether a connection from addr exceeds its quota. A nil
// Quota blocks nothing.
func (q *Quota) Blocked(addr net.Addr) bool {
	if q == nil {
		return false
	}
	var limiter *rate.Limiter
	key := ipKey(addr)
	if key != "" {
		q.mu.Lock()
		if v, ok := q.cache.Get(key); ok {
			limiter = v.(*rate.Limiter)
		} else {
			limiter = rate.NewLimiter(rate.Limit(q.eps), q.burst)
			q.cache.Add(key, limiter)
		}
		q.mu.Unlock()
	}
	return limiter != nil && !limiter.Allow()
}

func ipKey(addr net.Addr) string {
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ""
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	// 最后一个字节清零，同一网段共享配额
	ip[len(ip)-1] = 0
	return ip.String()
}
