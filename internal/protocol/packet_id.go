package protocol

// Packet ids for protocol 765 (1.20.4).
const (
	CurrentProtocolVersion = 765
	CurrentVersionName     = "1.20.4"

	// Handshaking (C→S)
	C2SHandshake = 0x00

	// Status (C→S)
	C2SStatusRequest = 0x00
	C2SPingRequest   = 0x01

	// Status (S→C)
	S2CStatusResponse = 0x00
	S2CPongResponse   = 0x01

	// Login (C→S)
	C2SLoginStart        = 0x00
	C2SLoginAcknowledged = 0x03

	// Login (S→C)
	S2CLoginSuccess = 0x02

	// Configuration (C→S)
	C2SConfigAcknowledgeFinish = 0x00
	C2SConfigKeepAlive         = 0x03

	// Configuration (S→C)
	S2CFinishConfiguration = 0x02
	S2CRegistryData        = 0x05

	// Play (C→S)
	C2SKeepAlive                 = 0x15
	C2SSetPlayerPosition         = 0x17
	C2SSetPlayerPositionRotation = 0x18
	C2SSetPlayerRotation         = 0x19
	C2SPlayerAction              = 0x21

	// Play (S→C)
	S2CGameEvent = 0x20
	S2CKeepAlive = 0x24
	S2CChunkData = 0x25
	S2CLogin     = 0x29
)
