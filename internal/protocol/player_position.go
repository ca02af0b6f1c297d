package protocol

// Serverbound movement packets, built the way a client sends them.

func CreateSetPlayerPositionPacket(x, y, z float64, onGround bool) *Packet {
	p := NewPacket(C2SSetPlayerPosition)
	_ = WriteDouble(p, x)
	_ = WriteDouble(p, y)
	_ = WriteDouble(p, z)
	_ = WriteBool(p, onGround)
	return p
}

func CreateSetPlayerPositionRotationPacket(x, y, z float64, yaw, pitch float32, onGround bool) *Packet {
	p := NewPacket(C2SSetPlayerPositionRotation)
	_ = WriteDouble(p, x)
	_ = WriteDouble(p, y)
	_ = WriteDouble(p, z)
	_ = WriteFloat(p, yaw)
	_ = WriteFloat(p, pitch)
	_ = WriteBool(p, onGround)
	return p
}

func CreateSetPlayerRotationPacket(yaw, pitch float32, onGround bool) *Packet {
	p := NewPacket(C2SSetPlayerRotation)
	_ = WriteFloat(p, yaw)
	_ = WriteFloat(p, pitch)
	_ = WriteBool(p, onGround)
	return p
}
