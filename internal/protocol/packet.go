package protocol

import (
	"errors"
	"fmt"
	"io"
)

const MaxPacketSize = 2097152 // 2MB

// Packet is a message id plus a cursor over its payload. The underlying
// Buffer always starts with the VarInt-encoded id; the read offset sits just
// past it, so reads consume payload and writes append payload.
type Packet struct {
	ID int32
	*Buffer
	hdr int
}

// NewPacket starts an outbound packet. The id is encoded immediately so every
// later Write* call appends payload after it.
func NewPacket(id int32) *Packet {
	data := AppendVarint(make([]byte, 0, 64), id)
	return &Packet{
		ID:     id,
		Buffer: &Buffer{data: data, off: len(data)},
		hdr:    len(data),
	}
}

// ParsePacket wraps one inbound frame body (id + payload, length prefix
// already removed). The leading VarInt becomes the id.
func ParsePacket(frame []byte) (*Packet, error) {
	buf := NewBuffer(frame)
	id, err := ReadVarint(buf)
	if err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	return &Packet{ID: id, Buffer: buf, hdr: buf.off}, nil
}

// Payload returns every payload byte, whether or not it has been read.
func (p *Packet) Payload() []byte {
	return p.data[p.hdr:]
}

// Frame returns the packet with its length prefix:
// VarInt(len(id+payload)) || id || payload.
func (p *Packet) Frame() []byte {
	body := p.All()
	frame := make([]byte, 0, VarIntLen(int32(len(body)))+len(body))
	frame = AppendVarint(frame, int32(len(body)))
	return append(frame, body...)
}

func (p *Packet) String() string {
	return fmt.Sprintf("Packet{ID: 0x%02x, Payload: %d bytes}", p.ID, len(p.Payload()))
}

// WritePacket writes the full frame with a single Write call so concurrent
// writers serialized by the caller never interleave inside a frame.
func WritePacket(w io.Writer, packet *Packet) error {
	if len(packet.All()) > MaxPacketSize {
		return ErrPacketTooLarge
	}
	_, err := w.Write(packet.Frame())
	return err
}

// ReadPacket reads exactly one frame from a stream.
func ReadPacket(r io.Reader) (*Packet, error) {
	packetLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if packetLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if packetLen > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}
	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}
	return ParsePacket(data)
}
