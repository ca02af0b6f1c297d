package protocol

import (
	"io"
)

const (
	ChunkSectionCount     = 24
	BlockStatesPerSection = 16 * 16 * 16
	BiomesPerSection      = 4 * 4 * 4
)

// ChunkSection is a 16x16x16 section whose block states and biomes are each
// a single palette value, so neither carries a data array.
type ChunkSection struct {
	BlockCount int16
	BlockState int32
	Biome      int32
}

func WriteChunkSection(w io.Writer, s ChunkSection) error {
	if err := WriteInt16(w, s.BlockCount); err != nil {
		return err
	}
	// block states: bits per entry 0, single value, empty data array
	if err := writeSingleValuePalette(w, s.BlockState); err != nil {
		return err
	}
	// biomes
	return writeSingleValuePalette(w, s.Biome)
}

func writeSingleValuePalette(w io.Writer, value int32) error {
	if err := WriteByte(w, 0); err != nil {
		return err
	}
	if err := WriteVarint(w, value); err != nil {
		return err
	}
	return WriteVarint(w, 0)
}

// CreateChunkDataPacket encodes a chunk-data-and-update-light packet with no
// block entities and no light data.
func CreateChunkDataPacket(chunkX, chunkZ int32, heightmaps *NBTNode, sections []ChunkSection) (*Packet, error) {
	p := NewPacket(S2CChunkData)
	_ = WriteInt32(p, chunkX)
	_ = WriteInt32(p, chunkZ)
	if err := WriteAnonymousNBT(p, heightmaps); err != nil {
		return nil, err
	}

	data := NewBuffer(nil)
	for _, s := range sections {
		_ = WriteChunkSection(data, s)
	}
	_ = WriteVarint(p, int32(data.Len()))
	_, _ = p.Write(data.All())

	// block entities
	_ = WriteVarint(p, 0)
	// sky/block light masks and empty masks
	for i := 0; i < 4; i++ {
		_ = WriteVarint(p, 0)
	}
	// sky light arrays, block light arrays
	_ = WriteVarint(p, 0)
	_ = WriteVarint(p, 0)
	return p, nil
}
