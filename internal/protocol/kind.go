package protocol

import (
	"fmt"
	"io"
)

// Kind names a primitive wire value. Dispatch tables declare a packet's
// parameters as an ordered list of kinds.
type Kind uint8

const (
	KindBool Kind = iota + 1
	KindByte
	KindUByte
	KindShort
	KindUShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindVarInt
	KindVarLong
	KindString
	KindUUID
	KindPosition
)

var kindNames = map[Kind]string{
	KindBool:     "Boolean",
	KindByte:     "Byte",
	KindUByte:    "UByte",
	KindShort:    "Short",
	KindUShort:   "UShort",
	KindInt:      "Int",
	KindLong:     "Long",
	KindFloat:    "Float",
	KindDouble:   "Double",
	KindVarInt:   "VarInt",
	KindVarLong:  "VarLong",
	KindString:   "String",
	KindUUID:     "UUID",
	KindPosition: "Position",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Decode reads one value of kind k. The dynamic type of the result is
// bool, int8, uint8, int16, uint16, int32, int64, float32, float64, string,
// uuid.UUID or Position.
func (k Kind) Decode(r io.Reader) (any, error) {
	switch k {
	case KindBool:
		return ReadBool(r)
	case KindByte:
		return ReadInt8(r)
	case KindUByte:
		return ReadByte(r)
	case KindShort:
		return ReadInt16(r)
	case KindUShort:
		return ReadUnsignedShort(r)
	case KindInt:
		return ReadInt32(r)
	case KindLong:
		return ReadInt64(r)
	case KindFloat:
		return ReadFloat(r)
	case KindDouble:
		return ReadDouble(r)
	case KindVarInt:
		return ReadVarint(r)
	case KindVarLong:
		return ReadVarLong(r)
	case KindString:
		return ReadString(r)
	case KindUUID:
		return ReadUUID(r)
	case KindPosition:
		return ReadPosition(r)
	default:
		return nil, fmt.Errorf("decode unknown kind %s", k)
	}
}
