// Package status 构建服务器列表 Ping 返回的状态 JSON
package status

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/Versifine/hearth/internal/protocol"
)

// MaxSample 是状态中最多列出的在线玩家数量
const MaxSample = 12

const cacheKey = "status"

type Options struct {
	VersionName        string
	Protocol           int32
	MaxPlayers         int32
	Description        string
	FaviconFile        string
	EnforcesSecureChat bool
	PreviewsChat       bool
	// CacheTTL 为 0 时每次请求都重新生成
	CacheTTL time.Duration
}

func DefaultOptions() Options {
	return Options{
		VersionName: protocol.CurrentVersionName,
		Protocol:    protocol.CurrentProtocolVersion,
		MaxPlayers:  20,
		Description: "A Hearth server",
		CacheTTL:    time.Second,
	}
}

// Sample is one entry of players.sample.
type Sample struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Source reports who is online right now.
type Source interface {
	Online() int32
	Sample(limit int) []Sample
}

type document struct {
	Version            version     `json:"version"`
	Players            players     `json:"players"`
	Description        description `json:"description"`
	Favicon            string      `json:"favicon,omitempty"`
	EnforcesSecureChat bool        `json:"enforcesSecureChat"`
	PreviewsChat       bool        `json:"previewsChat"`
}

type version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type players struct {
	Max    int32    `json:"max"`
	Online int32    `json:"online"`
	Sample []Sample `json:"sample"`
}

type description struct {
	Text string `json:"text"`
}

// Builder renders the status document. It is safe for concurrent use.
type Builder struct {
	opts    Options
	source  Source
	favicon string
	cache   *ttlcache.Cache[string, string]
}

func New(opts Options, source Source) (*Builder, error) {
	b := &Builder{opts: opts, source: source}

	if opts.FaviconFile != "" {
		data, err := os.ReadFile(opts.FaviconFile)
		if err != nil {
			return nil, fmt.Errorf("read favicon: %w", err)
		}
		b.favicon = "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	}

	if opts.CacheTTL > 0 {
		loader := ttlcache.LoaderFunc[string, string](
			func(c *ttlcache.Cache[string, string], key string) *ttlcache.Item[string, string] {
				doc, err := b.build()
				if err != nil {
					return nil
				}
				return c.Set(key, doc, ttlcache.DefaultTTL)
			},
		)
		b.cache = ttlcache.New[string, string](
			ttlcache.WithTTL[string, string](opts.CacheTTL),
			ttlcache.WithDisableTouchOnHit[string, string](),
			ttlcache.WithLoader[string, string](ttlcache.NewSuppressedLoader[string, string](loader, new(singleflight.Group))),
		)
	}
	return b, nil
}

// Status returns the JSON document, from cache when it is still fresh.
func (b *Builder) Status() (string, error) {
	if b.cache != nil {
		if item := b.cache.Get(cacheKey); item != nil {
			return item.Value(), nil
		}
	}
	return b.build()
}

// Invalidate drops the cached document.
func (b *Builder) Invalidate() {
	if b.cache != nil {
		b.cache.Delete(cacheKey)
	}
}

func (b *Builder) build() (string, error) {
	doc := document{
		Version: version{Name: b.opts.VersionName, Protocol: b.opts.Protocol},
		Players: players{
			Max:    b.opts.MaxPlayers,
			Sample: []Sample{},
		},
		Description:        description{Text: b.opts.Description},
		Favicon:            b.favicon,
		EnforcesSecureChat: b.opts.EnforcesSecureChat,
		PreviewsChat:       b.opts.PreviewsChat,
	}
	if b.source != nil {
		doc.Players.Online = b.source.Online()
		if sample := b.source.Sample(MaxSample); sample != nil {
			doc.Players.Sample = sample
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal status: %w", err)
	}
	return string(data), nil
}
