package world

import (
	"fmt"
	"os"

	"github.com/Versifine/hearth/internal/protocol"
)

const (
	RegistryDimensionType = "minecraft:dimension_type"
	RegistryBiome         = "minecraft:worldgen/biome"

	BiomePlains = "minecraft:plains"
)

// BuildRegistry returns the registry codec sent during configuration: one
// dimension type and one biome.
func BuildRegistry(dimension string, bounds DimensionBounds) *protocol.NBTNode {
	return protocol.NewCompound("",
		registry(RegistryDimensionType, registryEntry(dimension, 0, dimensionTypeElement(bounds))),
		registry(RegistryBiome, registryEntry(BiomePlains, 0, plainsElement())),
	)
}

func registry(name string, entries ...*protocol.NBTNode) *protocol.NBTNode {
	return protocol.NewCompound(name,
		stringTag("type", name),
		protocol.NewList("value", protocol.TagCompound, entries...),
	)
}

func registryEntry(name string, id int32, element *protocol.NBTNode) *protocol.NBTNode {
	return protocol.NewCompound("",
		stringTag("name", name),
		intTag("id", id),
		element,
	)
}

func plainsElement() *protocol.NBTNode {
	return protocol.NewCompound("element",
		byteTag("has_precipitation", true),
		&protocol.NBTNode{Type: protocol.TagFloat, Name: "temperature", Value: float32(0.8)},
		&protocol.NBTNode{Type: protocol.TagFloat, Name: "downfall", Value: float32(0.4)},
		protocol.NewCompound("effects",
			intTag("sky_color", 7907327),
			intTag("water_fog_color", 329011),
			intTag("fog_color", 12638463),
			intTag("water_color", 4159204),
		),
	)
}

// loadRegistryFile reads a captured registry payload and checks that it is a
// single anonymous NBT compound.
func loadRegistryFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}
	buf := protocol.NewBuffer(data)
	root, err := protocol.ReadAnonymousNBT(buf)
	if err != nil {
		return nil, fmt.Errorf("parse registry file %s: %w", path, err)
	}
	if root.Type != protocol.TagCompound {
		return nil, fmt.Errorf("registry file %s: root is %d, want compound", path, root.Type)
	}
	if buf.Len() != 0 {
		return nil, fmt.Errorf("registry file %s: %d trailing bytes", path, buf.Len())
	}
	return data, nil
}
