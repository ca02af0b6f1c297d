package protocol

import (
	"fmt"
	"io"
)

// Buffer is a byte cursor: writes append to the end, reads consume from the
// read offset. A Buffer belongs to exactly one packet or tag and is not safe
// for concurrent use.
type Buffer struct {
	data []byte
	off  int
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *Buffer) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.off:])
	b.off += n
	return n, nil
}

func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.data) {
		return 0, io.EOF
	}
	c := b.data[b.off]
	b.off++
	return c, nil
}

// Next consumes exactly n bytes. On failure nothing is consumed.
func (b *Buffer) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrShortBuffer, n)
	}
	if n > b.Len() {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrShortBuffer, n, b.Len())
	}
	p := b.data[b.off : b.off+n]
	b.off += n
	return p, nil
}

// Len 返回尚未读取的字节数
func (b *Buffer) Len() int { return len(b.data) - b.off }

// Bytes returns the unread portion without consuming it.
func (b *Buffer) Bytes() []byte { return b.data[b.off:] }

// All returns every byte written, including the already consumed ones.
func (b *Buffer) All() []byte { return b.data }

func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.off = 0
}
