package protocol

import (
	"fmt"
	"io"
)

type SpawnInfo struct {
	DimensionType    string
	DimensionName    string
	HashedSeed       int64
	Gamemode         uint8
	PreviousGamemode int8
	IsDebug          bool
	IsFlat           bool
	PortalCooldown   int32
}

type PlayLogin struct {
	EntityID            int32
	IsHardcore          bool
	WorldNames          []string
	MaxPlayers          int32
	ViewDistance        int32
	SimulationDistance  int32
	ReducedDebugInfo    bool
	EnableRespawnScreen bool
	DoLimitedCrafting   bool
	WorldState          SpawnInfo
}

// CreatePlayLoginPacket encodes the join-game packet. No death location is
// ever sent.
func CreatePlayLoginPacket(login PlayLogin) *Packet {
	p := NewPacket(S2CLogin)
	_ = WriteInt32(p, login.EntityID)
	_ = WriteBool(p, login.IsHardcore)
	_ = WriteVarint(p, int32(len(login.WorldNames)))
	for _, name := range login.WorldNames {
		_ = WriteString(p, name)
	}
	_ = WriteVarint(p, login.MaxPlayers)
	_ = WriteVarint(p, login.ViewDistance)
	_ = WriteVarint(p, login.SimulationDistance)
	_ = WriteBool(p, login.ReducedDebugInfo)
	_ = WriteBool(p, login.EnableRespawnScreen)
	_ = WriteBool(p, login.DoLimitedCrafting)
	_ = WriteString(p, login.WorldState.DimensionType)
	_ = WriteString(p, login.WorldState.DimensionName)
	_ = WriteInt64(p, login.WorldState.HashedSeed)
	_ = WriteByte(p, login.WorldState.Gamemode)
	_ = WriteInt8(p, login.WorldState.PreviousGamemode)
	_ = WriteBool(p, login.WorldState.IsDebug)
	_ = WriteBool(p, login.WorldState.IsFlat)
	_ = WriteBool(p, false)
	_ = WriteVarint(p, login.WorldState.PortalCooldown)
	return p
}

func ParsePlayLogin(r io.Reader) (*PlayLogin, error) {
	var login PlayLogin
	var err error
	if login.EntityID, err = ReadInt32(r); err != nil {
		return nil, fmt.Errorf("read entity id: %w", err)
	}
	if login.IsHardcore, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read isHardcore: %w", err)
	}
	worldNameCount, err := ReadVarint(r)
	if err != nil {
		return nil, fmt.Errorf("read world names count: %w", err)
	}
	if worldNameCount < 0 || worldNameCount > 1024 {
		return nil, fmt.Errorf("invalid world names count: %d", worldNameCount)
	}
	login.WorldNames = make([]string, 0, worldNameCount)
	for i := int32(0); i < worldNameCount; i++ {
		name, err := ReadString(r)
		if err != nil {
			return nil, fmt.Errorf("read world name %d: %w", i, err)
		}
		login.WorldNames = append(login.WorldNames, name)
	}
	if login.MaxPlayers, err = ReadVarint(r); err != nil {
		return nil, fmt.Errorf("read maxPlayers: %w", err)
	}
	if login.ViewDistance, err = ReadVarint(r); err != nil {
		return nil, fmt.Errorf("read viewDistance: %w", err)
	}
	if login.SimulationDistance, err = ReadVarint(r); err != nil {
		return nil, fmt.Errorf("read simulationDistance: %w", err)
	}
	if login.ReducedDebugInfo, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read reducedDebugInfo: %w", err)
	}
	if login.EnableRespawnScreen, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read enableRespawnScreen: %w", err)
	}
	if login.DoLimitedCrafting, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read doLimitedCrafting: %w", err)
	}
	ws := &login.WorldState
	if ws.DimensionType, err = ReadString(r); err != nil {
		return nil, fmt.Errorf("read dimension type: %w", err)
	}
	if ws.DimensionName, err = ReadString(r); err != nil {
		return nil, fmt.Errorf("read dimension name: %w", err)
	}
	if ws.HashedSeed, err = ReadInt64(r); err != nil {
		return nil, fmt.Errorf("read hashed seed: %w", err)
	}
	if ws.Gamemode, err = ReadByte(r); err != nil {
		return nil, fmt.Errorf("read gamemode: %w", err)
	}
	if ws.PreviousGamemode, err = ReadInt8(r); err != nil {
		return nil, fmt.Errorf("read previous gamemode: %w", err)
	}
	if ws.IsDebug, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read isDebug: %w", err)
	}
	if ws.IsFlat, err = ReadBool(r); err != nil {
		return nil, fmt.Errorf("read isFlat: %w", err)
	}
	hasDeath, err := ReadBool(r)
	if err != nil {
		return nil, fmt.Errorf("read hasDeathLocation: %w", err)
	}
	if hasDeath {
		return nil, fmt.Errorf("death location is not supported")
	}
	if ws.PortalCooldown, err = ReadVarint(r); err != nil {
		return nil, fmt.Errorf("read portal cooldown: %w", err)
	}
	return &login, nil
}

// Game event ids.
const (
	GameEventStartWaitingForChunks = 13
)

func CreateGameEventPacket(event uint8, value float32) *Packet {
	p := NewPacket(S2CGameEvent)
	_ = WriteByte(p, event)
	_ = WriteFloat(p, value)
	return p
}
