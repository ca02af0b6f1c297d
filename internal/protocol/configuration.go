package protocol

// CreateRegistryDataPacket wraps a pre-encoded anonymous NBT compound.
func CreateRegistryDataPacket(registryNBT []byte) *Packet {
	p := NewPacket(S2CRegistryData)
	_, _ = p.Write(registryNBT)
	return p
}

func CreateFinishConfigurationPacket() *Packet {
	return NewPacket(S2CFinishConfiguration)
}

func CreateAcknowledgeFinishConfigurationPacket() *Packet {
	return NewPacket(C2SConfigAcknowledgeFinish)
}
