package session

import (
	"github.com/google/uuid"

	"github.com/Versifine/hearth/internal/protocol"
)

// Args holds decoded packet parameters in declaration order. Each accessor
// asserts the kind the route declared at that index; a mismatch is a bug in
// the table and panics.
type Args []any

func (a Args) Bool(i int) bool                  { return a[i].(bool) }
func (a Args) Byte(i int) int8                  { return a[i].(int8) }
func (a Args) UByte(i int) uint8                { return a[i].(uint8) }
func (a Args) Short(i int) int16                { return a[i].(int16) }
func (a Args) UShort(i int) uint16              { return a[i].(uint16) }
func (a Args) Int(i int) int32                  { return a[i].(int32) }
func (a Args) VarInt(i int) int32               { return a[i].(int32) }
func (a Args) Long(i int) int64                 { return a[i].(int64) }
func (a Args) VarLong(i int) int64              { return a[i].(int64) }
func (a Args) Float(i int) float32              { return a[i].(float32) }
func (a Args) Double(i int) float64             { return a[i].(float64) }
func (a Args) String(i int) string              { return a[i].(string) }
func (a Args) UUID(i int) uuid.UUID             { return a[i].(uuid.UUID) }
func (a Args) Position(i int) protocol.Position { return a[i].(protocol.Position) }
