package protocol

// CreateKeepAlivePacket builds a keep-alive carrying id. The same layout is
// used in Configuration and Play and in both directions, only packetID
// differs.
func CreateKeepAlivePacket(keepAliveID int64, packetID int32) *Packet {
	p := NewPacket(packetID)
	_ = WriteInt64(p, keepAliveID)
	return p
}
