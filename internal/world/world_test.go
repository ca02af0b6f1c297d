package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Versifine/hearth/internal/protocol"
)

func TestNewDefault(t *testing.T) {
	w, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sections := w.ChunkSections()
	if len(sections) != protocol.ChunkSectionCount {
		t.Fatalf("len(sections) = %d, want %d", len(sections), protocol.ChunkSectionCount)
	}
	for i, s := range sections {
		if s.BlockCount != 4096 || s.BlockState != 17 || s.Biome != 0 {
			t.Fatalf("section %d = %+v", i, s)
		}
	}

	x, z, spawn := w.SpawnChunk()
	if x != 0 || z != 0 || len(spawn) != protocol.ChunkSectionCount {
		t.Fatalf("SpawnChunk() = %d, %d, %d sections", x, z, len(spawn))
	}
}

func TestNewUnknownDimension(t *testing.T) {
	opts := DefaultOptions()
	opts.Dimension = "minecraft:custom"
	if _, err := New(opts); err == nil {
		t.Fatal("New() 应该拒绝未知维度")
	}
}

func TestRegistryData(t *testing.T) {
	w, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	buf := protocol.NewBuffer(w.RegistryData())
	root, err := protocol.ReadAnonymousNBT(buf)
	if err != nil {
		t.Fatalf("ReadAnonymousNBT() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("registry has %d trailing bytes", buf.Len())
	}

	for _, name := range []string{RegistryDimensionType, RegistryBiome} {
		reg, ok := root.Get(name)
		if !ok {
			t.Fatalf("registry %s missing", name)
		}
		value, ok := reg.Get("value")
		if !ok {
			t.Fatalf("registry %s has no value list", name)
		}
		list := value.Value.(protocol.NBTList)
		if list.ElemType != protocol.TagCompound || len(list.Items) != 1 {
			t.Fatalf("registry %s value = %+v", name, list)
		}
	}

	dim, _ := root.Get(RegistryDimensionType)
	value, _ := dim.Get("value")
	entry := value.Value.(protocol.NBTList).Items[0]
	element, ok := entry.Get("element")
	if !ok {
		t.Fatal("dimension entry has no element")
	}
	minY, _ := element.Get("min_y")
	if minY.Value != int32(-64) {
		t.Fatalf("min_y = %v, want -64", minY.Value)
	}
}

func TestRegistryFile(t *testing.T) {
	blob, err := protocol.MarshalAnonymousNBT(protocol.NewCompound("", stringTag("marker", "captured")))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "registry.nbt")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	opts.RegistryFile = path
	w, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if string(w.RegistryData()) != string(blob) {
		t.Fatal("RegistryData() 应该原样返回文件内容")
	}
}

func TestRegistryFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.nbt")
	if err := os.WriteFile(path, []byte{0x0a, 0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.RegistryFile = path
	if _, err := New(opts); err == nil {
		t.Fatal("New() 应该拒绝带有多余字节的注册表文件")
	}
}

func TestJoinGame(t *testing.T) {
	w, err := New(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	login := w.JoinGame(7)
	if login.EntityID != 7 {
		t.Errorf("EntityID = %d, want 7", login.EntityID)
	}
	if len(login.WorldNames) != 4 || login.WorldNames[0] != DimensionOverworld {
		t.Errorf("WorldNames = %v", login.WorldNames)
	}
	if login.MaxPlayers != 20 || login.ViewDistance != 10 || login.SimulationDistance != 8 {
		t.Errorf("distances = %d/%d/%d", login.MaxPlayers, login.ViewDistance, login.SimulationDistance)
	}
	if login.WorldState.Gamemode != 1 || login.WorldState.PreviousGamemode != -1 {
		t.Errorf("gamemode = %d/%d", login.WorldState.Gamemode, login.WorldState.PreviousGamemode)
	}
}
