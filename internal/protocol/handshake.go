package protocol

const (
	NextStateStatus = 1
	NextStateLogin  = 2
)

func CreateHandshakePacket(protocolVersion int32, serverAddress string, serverPort uint16, nextState int32) *Packet {
	p := NewPacket(C2SHandshake)
	_ = WriteVarint(p, protocolVersion)
	_ = WriteString(p, serverAddress)
	_ = WriteUnsignedShort(p, serverPort)
	_ = WriteVarint(p, nextState)
	return p
}
