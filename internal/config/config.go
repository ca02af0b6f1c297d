package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen  ListenConfig  `yaml:"listen"`
	Logging LoggingConfig `yaml:"logging"`
	Status  StatusConfig  `yaml:"status"`
	Session SessionConfig `yaml:"session"`
	Quota   QuotaConfig   `yaml:"quota"`
	World   WorldConfig   `yaml:"world"`
}

type ListenConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type StatusConfig struct {
	Description        string        `yaml:"description"`
	MaxPlayers         int32         `yaml:"max_players"`
	Favicon            string        `yaml:"favicon"`
	EnforcesSecureChat bool          `yaml:"enforces_secure_chat"`
	PreviewsChat       bool          `yaml:"previews_chat"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
}

type SessionConfig struct {
	KeepAliveInterval time.Duration `yaml:"keep_alive_interval"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
}

// QuotaConfig 限制同一网段每秒新建连接数
type QuotaConfig struct {
	Enabled         bool    `yaml:"enabled"`
	EventsPerSecond float32 `yaml:"events_per_second"`
	Burst           int     `yaml:"burst"`
	MaxEntries      int     `yaml:"max_entries"`
}

type WorldConfig struct {
	Dimension          string `yaml:"dimension"`
	RegistryFile       string `yaml:"registry_file"`
	ViewDistance       int32  `yaml:"view_distance"`
	SimulationDistance int32  `yaml:"simulation_distance"`
	Gamemode           uint8  `yaml:"gamemode"`
	HashedSeed         int64  `yaml:"hashed_seed"`
}

func Default() *Config {
	return &Config{
		Listen: ListenConfig{Host: "0.0.0.0", Port: 25565},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Status: StatusConfig{
			Description: "A Hearth server",
			MaxPlayers:  20,
			CacheTTL:    time.Second,
		},
		Session: SessionConfig{
			KeepAliveInterval: 15 * time.Second,
			ReadTimeout:       30 * time.Second,
		},
		Quota: QuotaConfig{
			Enabled:         true,
			EventsPerSecond: 2,
			Burst:           5,
			MaxEntries:      1024,
		},
		World: WorldConfig{
			Dimension:          "minecraft:overworld",
			ViewDistance:       10,
			SimulationDistance: 8,
			Gamemode:           1,
		},
	}
}

// Load reads path and overlays it onto Default, so keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Listen.Port < 0 || c.Listen.Port > 65535 {
		errs = append(errs, fmt.Errorf("listen.port %d out of range", c.Listen.Port))
	}
	if c.Session.KeepAliveInterval <= 0 {
		errs = append(errs, errors.New("session.keep_alive_interval must be positive"))
	}
	if c.Session.ReadTimeout < 0 {
		errs = append(errs, errors.New("session.read_timeout must not be negative"))
	}
	if c.Status.CacheTTL < 0 {
		errs = append(errs, errors.New("status.cache_ttl must not be negative"))
	}
	if c.Quota.Enabled && (c.Quota.EventsPerSecond < 0 || c.Quota.Burst <= 0 || c.Quota.MaxEntries <= 0) {
		errs = append(errs, errors.New("quota needs events_per_second >= 0, burst > 0 and max_entries > 0"))
	}
	if c.World.Gamemode > 3 {
		errs = append(errs, fmt.Errorf("world.gamemode %d out of range", c.World.Gamemode))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Listen.Host, strconv.Itoa(c.Listen.Port))
}

// Marshal 返回配置的 YAML 表示
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
