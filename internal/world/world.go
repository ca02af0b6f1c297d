// Package world 提供玩家进入世界时发送的固定数据：注册表、加入游戏参数和出生区块
package world

import (
	"fmt"

	"github.com/Versifine/hearth/internal/protocol"
)

const (
	// StoneBlockState 是原版 1.20.4 中石头的方块状态 ID
	StoneBlockState = 17
	PlainsBiomeID   = 0
)

type Options struct {
	Dimension          string
	RegistryFile       string
	MaxPlayers         int32
	ViewDistance       int32
	SimulationDistance int32
	Gamemode           uint8
	HashedSeed         int64
	SpawnBlockState    int32
}

func DefaultOptions() Options {
	return Options{
		Dimension:          DimensionOverworld,
		MaxPlayers:         20,
		ViewDistance:       10,
		SimulationDistance: 8,
		Gamemode:           1,
		SpawnBlockState:    StoneBlockState,
	}
}

// World holds the payloads shared by every joining player. It is immutable
// after New and safe for concurrent use.
type World struct {
	opts     Options
	bounds   DimensionBounds
	registry []byte
	sections []protocol.ChunkSection
}

func New(opts Options) (*World, error) {
	bounds, ok := VanillaDimensionBounds(opts.Dimension)
	if !ok {
		return nil, fmt.Errorf("unknown dimension %q", opts.Dimension)
	}

	var registry []byte
	var err error
	if opts.RegistryFile != "" {
		registry, err = loadRegistryFile(opts.RegistryFile)
	} else {
		registry, err = protocol.MarshalAnonymousNBT(BuildRegistry(opts.Dimension, bounds))
	}
	if err != nil {
		return nil, err
	}

	sections := make([]protocol.ChunkSection, bounds.Sections())
	for i := range sections {
		sections[i] = protocol.ChunkSection{
			BlockCount: protocol.BlockStatesPerSection,
			BlockState: opts.SpawnBlockState,
			Biome:      PlainsBiomeID,
		}
	}

	return &World{opts: opts, bounds: bounds, registry: registry, sections: sections}, nil
}

func (w *World) Bounds() DimensionBounds { return w.bounds }

// RegistryData returns the registry NBT payload. Callers must not modify it.
func (w *World) RegistryData() []byte { return w.registry }

func (w *World) JoinGame(entityID int32) protocol.PlayLogin {
	return protocol.PlayLogin{
		EntityID:           entityID,
		WorldNames:         []string{DimensionOverworld, "minecraft:overworld_caves", DimensionNether, DimensionEnd},
		MaxPlayers:         w.opts.MaxPlayers,
		ViewDistance:       w.opts.ViewDistance,
		SimulationDistance: w.opts.SimulationDistance,
		WorldState: protocol.SpawnInfo{
			DimensionType:    w.opts.Dimension,
			DimensionName:    w.opts.Dimension,
			HashedSeed:       w.opts.HashedSeed,
			Gamemode:         w.opts.Gamemode,
			PreviousGamemode: -1,
		},
	}
}

// ChunkSections returns the sections of every generated chunk.
func (w *World) ChunkSections() []protocol.ChunkSection {
	out := make([]protocol.ChunkSection, len(w.sections))
	copy(out, w.sections)
	return out
}

// SpawnChunk returns the chunk at the origin that joining players receive.
func (w *World) SpawnChunk() (chunkX, chunkZ int32, sections []protocol.ChunkSection) {
	return 0, 0, w.ChunkSections()
}
