package protocol

func CreateStatusRequestPacket() *Packet {
	return NewPacket(C2SStatusRequest)
}

func CreatePingRequestPacket(payload int64) *Packet {
	p := NewPacket(C2SPingRequest)
	_ = WriteInt64(p, payload)
	return p
}

// CreateStatusResponsePacket carries the status JSON document as a protocol string.
func CreateStatusResponsePacket(statusJSON string) *Packet {
	p := NewPacket(S2CStatusResponse)
	_ = WriteString(p, statusJSON)
	return p
}

func CreatePongResponsePacket(payload int64) *Packet {
	p := NewPacket(S2CPongResponse)
	_ = WriteInt64(p, payload)
	return p
}
