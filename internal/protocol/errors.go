package protocol

import "errors"

var (
	ErrVarIntTooLong  = errors.New("varint is too long")
	ErrVarLongTooLong = errors.New("varlong is too long")
	ErrNonCanonical   = errors.New("varint is not minimally encoded")
	ErrPacketTooLarge = errors.New("packet size exceeds maximum allowed")
	ErrInvalidPacket  = errors.New("invalid packet structure")
	ErrShortBuffer    = errors.New("not enough bytes remaining")
	ErrInvalidString  = errors.New("invalid string length")
	ErrInvalidUTF8    = errors.New("string is not valid UTF-8")

	ErrInvalidNBTType   = errors.New("invalid NBT type")
	ErrInvalidNBTLength = errors.New("invalid NBT length")
	ErrNBTTooDeep       = errors.New("NBT nesting too deep")
)

// IsMalformed 判断错误是否来自不可信字节的解码失败，这类错误应当关闭连接
func IsMalformed(err error) bool {
	for _, target := range []error{
		ErrVarIntTooLong, ErrVarLongTooLong, ErrNonCanonical, ErrPacketTooLarge, ErrInvalidPacket,
		ErrShortBuffer, ErrInvalidString, ErrInvalidUTF8,
		ErrInvalidNBTType, ErrInvalidNBTLength, ErrNBTTooDeep,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
