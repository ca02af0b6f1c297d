package protocol

// Player action status values.
const (
	ActionStartedDigging   int32 = 0
	ActionCancelledDigging int32 = 1
	ActionFinishedDigging  int32 = 2
	ActionDropItemStack    int32 = 3
	ActionDropItem         int32 = 4
	ActionReleaseUseItem   int32 = 5
	ActionSwapItemInHand   int32 = 6
)

func CreatePlayerActionPacket(status int32, pos Position, face int8, sequence int32) *Packet {
	p := NewPacket(C2SPlayerAction)
	_ = WriteVarint(p, status)
	_ = WritePosition(p, pos)
	_ = WriteInt8(p, face)
	_ = WriteVarint(p, sequence)
	return p
}
