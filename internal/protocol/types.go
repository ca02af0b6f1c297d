package protocol

import (
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxStringLength is the longest protocol string in characters; the byte
// length may be up to four times larger.
const MaxStringLength = 32767

func readFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return errors.Join(ErrShortBuffer, err)
		}
		return err
	}
	return nil
}

func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if err := readFull(r, buf[:]); err != nil {
		return false, err
	}
	return buf[0] != 0, nil
}

func WriteBool(w io.Writer, value bool) error {
	var b byte
	if value {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadByte reads one unsigned byte.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func WriteByte(w io.Writer, value byte) error {
	_, err := w.Write([]byte{value})
	return err
}

func ReadInt8(r io.Reader) (int8, error) {
	b, err := ReadByte(r)
	return int8(b), err
}

func WriteInt8(w io.Writer, value int8) error {
	return WriteByte(w, byte(value))
}

func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUnsignedShort(r)
	return int16(v), err
}

func WriteInt16(w io.Writer, value int16) error {
	return WriteUnsignedShort(w, uint16(value))
}

func ReadUnsignedShort(r io.Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func WriteUnsignedShort(w io.Writer, value uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], value)
	_, err := w.Write(buf[:])
	return err
}

func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func WriteInt32(w io.Writer, value int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func WriteInt64(w io.Writer, value int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(value))
	_, err := w.Write(buf[:])
	return err
}

func ReadFloat(r io.Reader) (float32, error) {
	v, err := ReadInt32(r)
	return math.Float32frombits(uint32(v)), err
}

func WriteFloat(w io.Writer, value float32) error {
	return WriteInt32(w, int32(math.Float32bits(value)))
}

func ReadDouble(r io.Reader) (float64, error) {
	v, err := ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}

func WriteDouble(w io.Writer, value float64) error {
	return WriteInt64(w, int64(math.Float64bits(value)))
}

func ReadString(r io.Reader) (string, error) {
	length, err := ReadVarint(r)
	if err != nil {
		return "", err
	}
	if length < 0 || length > MaxStringLength*4 {
		return "", fmt.Errorf("%w: %d", ErrInvalidString, length)
	}
	strBytes := make([]byte, length)
	if err := readFull(r, strBytes); err != nil {
		return "", err
	}
	if !utf8.Valid(strBytes) {
		return "", ErrInvalidUTF8
	}
	return string(strBytes), nil
}

func WriteString(w io.Writer, s string) error {
	if err := WriteVarint(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	if err := readFull(r, id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func WriteUUID(w io.Writer, id uuid.UUID) error {
	_, err := w.Write(id[:])
	return err
}

// GenerateOfflineUUID generates a version-3 UUID for offline-mode players.
// Algorithm: MD5("OfflinePlayer:" + username), then set version=3 and variant=RFC4122.
func GenerateOfflineUUID(username string) uuid.UUID {
	hash := md5.Sum([]byte("OfflinePlayer:" + username))
	// Set version to 3: byte 6 → 0011xxxx
	hash[6] = (hash[6] & 0x0F) | 0x30
	// Set variant to RFC 4122: byte 8 → 10xxxxxx
	hash[8] = (hash[8] & 0x3F) | 0x80
	return uuid.UUID(hash)
}

// Position is a block coordinate packed into one 64-bit integer:
// x in bits 38-63, z in bits 12-37, y in bits 0-11.
type Position struct {
	X int32
	Y int32
	Z int32
}

func (p Position) Pack() int64 {
	ux := uint64(int64(p.X) & 0x3FFFFFF)
	uy := uint64(int64(p.Y) & 0xFFF)
	uz := uint64(int64(p.Z) & 0x3FFFFFF)
	return int64((ux << 38) | (uz << 12) | uy)
}

func UnpackPosition(v int64) Position {
	u := uint64(v)
	x := int64(u >> 38 & 0x3FFFFFF)
	z := int64(u >> 12 & 0x3FFFFFF)
	y := int64(u & 0xFFF)
	if x >= 1<<25 {
		x -= 1 << 26
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	if y >= 1<<11 {
		y -= 1 << 12
	}
	return Position{X: int32(x), Y: int32(y), Z: int32(z)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

func ReadPosition(r io.Reader) (Position, error) {
	v, err := ReadInt64(r)
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(v), nil
}

func WritePosition(w io.Writer, p Position) error {
	return WriteInt64(w, p.Pack())
}
