package protocol

import "github.com/google/uuid"

func CreateLoginStartPacket(username string, id uuid.UUID) *Packet {
	p := NewPacket(C2SLoginStart)
	_ = WriteString(p, username)
	_ = WriteUUID(p, id)
	return p
}

func CreateLoginAcknowledgedPacket() *Packet {
	return NewPacket(C2SLoginAcknowledged)
}
