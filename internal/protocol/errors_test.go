package protocol

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestIsMalformed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"VarInt 过长", ErrVarIntTooLong, true},
		{"包装后的短缓冲", fmt.Errorf("decode: %w", errors.Join(ErrShortBuffer, io.EOF)), true},
		{"NBT 过深", fmt.Errorf("x: %w", ErrNBTTooDeep), true},
		{"写入失败", io.ErrClosedPipe, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMalformed(tt.err); got != tt.want {
				t.Errorf("IsMalformed(%v) = %v, 期望 %v", tt.err, got, tt.want)
			}
		})
	}
}
