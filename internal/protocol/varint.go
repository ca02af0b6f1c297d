package protocol

import (
	"io"
)

const (
	SEGMENT_BITS = 0x7F
	CONTINUE_BIT = 0x80

	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// varintLastByteMax is the largest final byte of a full-length encoding:
// 32 bits leave 4 bits for the fifth group, 64 bits leave 1 for the tenth.
const (
	varintLastByteMax  = 0x0F
	varlongLastByteMax = 0x01
)

// checkCanonical rejects a terminating byte that only adds zero groups or
// carries bits beyond the integer's width. Every value then has exactly one
// accepted encoding, the one AppendVarint produces.
func checkCanonical(b byte, i, maxLen int, lastMax byte) error {
	if i > 0 && b == 0 {
		return ErrNonCanonical
	}
	if i == maxLen-1 && b > lastMax {
		return ErrNonCanonical
	}
	return nil
}

func ReadVarint(r io.Reader) (int32, error) {
	var value uint32
	var b [1]byte
	for i := 0; i < MaxVarIntLen; i++ {
		if err := readFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= uint32(b[0]&SEGMENT_BITS) << (7 * i)
		if b[0]&CONTINUE_BIT == 0 {
			if err := checkCanonical(b[0], i, MaxVarIntLen, varintLastByteMax); err != nil {
				return 0, err
			}
			return int32(value), nil
		}
	}
	return 0, ErrVarIntTooLong
}

func WriteVarint(w io.Writer, value int32) error {
	var buf [MaxVarIntLen]byte
	_, err := w.Write(AppendVarint(buf[:0], value))
	return err
}

// AppendVarint appends the encoding of value to dst. Negative values are
// encoded as their unsigned 32-bit two's-complement, so they always take
// five bytes.
func AppendVarint(dst []byte, value int32) []byte {
	uvalue := uint32(value)
	for uvalue >= CONTINUE_BIT {
		dst = append(dst, byte(uvalue&SEGMENT_BITS)|CONTINUE_BIT)
		uvalue >>= 7
	}
	return append(dst, byte(uvalue))
}

// VarIntLen 返回 VarInt 编码后的字节长度
func VarIntLen(value int32) int {
	uvalue := uint32(value)
	n := 1
	for uvalue >= CONTINUE_BIT {
		uvalue >>= 7
		n++
	}
	return n
}

// peekVarint decodes a VarInt at the start of data without consuming it.
// n == 0 with a nil error means data ends before the terminating byte.
func peekVarint(data []byte) (value int32, n int, err error) {
	var uvalue uint32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(data) {
			return 0, 0, nil
		}
		b := data[i]
		uvalue |= uint32(b&SEGMENT_BITS) << (7 * i)
		if b&CONTINUE_BIT == 0 {
			if err := checkCanonical(b, i, MaxVarIntLen, varintLastByteMax); err != nil {
				return 0, 0, err
			}
			return int32(uvalue), i + 1, nil
		}
	}
	return 0, 0, ErrVarIntTooLong
}

func ReadVarLong(r io.Reader) (int64, error) {
	var value uint64
	var b [1]byte
	for i := 0; i < MaxVarLongLen; i++ {
		if err := readFull(r, b[:]); err != nil {
			return 0, err
		}
		value |= uint64(b[0]&SEGMENT_BITS) << (7 * i)
		if b[0]&CONTINUE_BIT == 0 {
			if err := checkCanonical(b[0], i, MaxVarLongLen, varlongLastByteMax); err != nil {
				return 0, err
			}
			return int64(value), nil
		}
	}
	return 0, ErrVarLongTooLong
}

func WriteVarLong(w io.Writer, value int64) error {
	var buf [MaxVarLongLen]byte
	out := buf[:0]
	uvalue := uint64(value)
	for uvalue >= CONTINUE_BIT {
		out = append(out, byte(uvalue&SEGMENT_BITS)|CONTINUE_BIT)
		uvalue >>= 7
	}
	out = append(out, byte(uvalue))
	_, err := w.Write(out)
	return err
}
