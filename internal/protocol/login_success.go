package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

type LoginSuccess struct {
	UUID       uuid.UUID
	Username   string
	Properties []Property
}

type Property struct {
	Name      string
	Value     string
	Signature *string
}

// CreateLoginSuccessPacket writes the profile with an empty property list.
func CreateLoginSuccessPacket(id uuid.UUID, username string) *Packet {
	p := NewPacket(S2CLoginSuccess)
	_ = WriteUUID(p, id)
	_ = WriteString(p, username)
	_ = WriteVarint(p, 0)
	return p
}

func ParseLoginSuccess(p *Packet) (*LoginSuccess, error) {
	id, err := ReadUUID(p)
	if err != nil {
		return nil, err
	}
	username, err := ReadString(p)
	if err != nil {
		return nil, err
	}
	propertiesLength, err := ReadVarint(p)
	if err != nil {
		return nil, err
	}
	if propertiesLength < 0 || int(propertiesLength) > p.Len() {
		return nil, fmt.Errorf("invalid property count: %d", propertiesLength)
	}
	properties := make([]Property, propertiesLength)
	for i := range properties {
		if properties[i], err = readProperty(p); err != nil {
			return nil, err
		}
	}
	return &LoginSuccess{
		UUID:       id,
		Username:   username,
		Properties: properties,
	}, nil
}

func readProperty(p *Packet) (Property, error) {
	name, err := ReadString(p)
	if err != nil {
		return Property{}, err
	}
	value, err := ReadString(p)
	if err != nil {
		return Property{}, err
	}
	hasSignature, err := ReadBool(p)
	if err != nil {
		return Property{}, err
	}
	var signature *string
	if hasSignature {
		sig, err := ReadString(p)
		if err != nil {
			return Property{}, err
		}
		signature = &sig
	}
	return Property{
		Name:      name,
		Value:     value,
		Signature: signature,
	}, nil
}
