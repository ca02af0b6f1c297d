package world

import "github.com/Versifine/hearth/internal/protocol"

const (
	DimensionOverworld = "minecraft:overworld"
	DimensionNether    = "minecraft:the_nether"
	DimensionEnd       = "minecraft:the_end"
)

type DimensionBounds struct {
	MinY   int
	Height int
}

// Sections 返回该高度范围包含的区段数量
func (b DimensionBounds) Sections() int { return b.Height / 16 }

func VanillaDimensionBounds(name string) (DimensionBounds, bool) {
	switch name {
	case DimensionOverworld:
		return DimensionBounds{MinY: -64, Height: 384}, true
	case DimensionNether, DimensionEnd:
		return DimensionBounds{MinY: 0, Height: 256}, true
	default:
		return DimensionBounds{}, false
	}
}

// dimensionTypeElement is the registry element describing a dimension type
// with the given bounds. Values follow the vanilla overworld.
func dimensionTypeElement(b DimensionBounds) *protocol.NBTNode {
	return protocol.NewCompound("element",
		byteTag("piglin_safe", false),
		byteTag("has_raids", true),
		intTag("monster_spawn_light_level", 0),
		intTag("monster_spawn_block_light_limit", 0),
		byteTag("natural", true),
		&protocol.NBTNode{Type: protocol.TagFloat, Name: "ambient_light", Value: float32(0)},
		stringTag("infiniburn", "#minecraft:infiniburn_overworld"),
		byteTag("respawn_anchor_works", false),
		byteTag("has_skylight", true),
		byteTag("bed_works", true),
		stringTag("effects", DimensionOverworld),
		intTag("min_y", int32(b.MinY)),
		intTag("height", int32(b.Height)),
		intTag("logical_height", int32(b.Height)),
		&protocol.NBTNode{Type: protocol.TagDouble, Name: "coordinate_scale", Value: float64(1)},
		byteTag("ultrawarm", false),
		byteTag("has_ceiling", false),
	)
}

func byteTag(name string, v bool) *protocol.NBTNode {
	var b int8
	if v {
		b = 1
	}
	return &protocol.NBTNode{Type: protocol.TagByte, Name: name, Value: b}
}

func intTag(name string, v int32) *protocol.NBTNode {
	return &protocol.NBTNode{Type: protocol.TagInt, Name: name, Value: v}
}

func stringTag(name, v string) *protocol.NBTNode {
	return &protocol.NBTNode{Type: protocol.TagString, Name: name, Value: v}
}
