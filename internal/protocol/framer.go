package protocol

import "fmt"

// Framer reassembles length-prefixed frames from arbitrary deliveries of a
// byte stream. A frame may be split across any number of Feed calls and one
// Feed may carry several frames.
type Framer struct {
	buf []byte
}

func (f *Framer) Feed(data []byte) {
	f.buf = append(f.buf, data...)
}

// Next returns the body (id + payload) of the next complete frame, or nil
// when more bytes are needed. An error means the stream is malformed and
// cannot be resynchronized.
func (f *Framer) Next() ([]byte, error) {
	length, n, err := peekVarint(f.buf)
	if err != nil {
		return nil, fmt.Errorf("read frame length: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: frame length %d", ErrInvalidPacket, length)
	}
	if length > MaxPacketSize {
		return nil, fmt.Errorf("%w: frame length %d", ErrPacketTooLarge, length)
	}
	end := n + int(length)
	if len(f.buf) < end {
		return nil, nil
	}
	frame := make([]byte, length)
	copy(frame, f.buf[n:end])
	f.buf = append(f.buf[:0], f.buf[end:]...)
	return frame, nil
}

// Buffered 返回尚未组成完整帧的字节数
func (f *Framer) Buffered() int { return len(f.buf) }
