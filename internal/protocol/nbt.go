package protocol

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	TagEnd       = 0
	TagByte      = 1
	TagShort     = 2
	TagInt       = 3
	TagLong      = 4
	TagFloat     = 5
	TagDouble    = 6
	TagByteArray = 7
	TagString    = 8
	TagList      = 9
	TagCompound  = 10
	TagIntArray  = 11
	TagLongArray = 12
)

// MaxNBTDepth bounds list/compound nesting when decoding untrusted input.
const MaxNBTDepth = 512

// NBTNode is one tag. Value holds, by Type:
//
//	TagByte      int8
//	TagShort     int16
//	TagInt       int32
//	TagLong      int64
//	TagFloat     float32
//	TagDouble    float64
//	TagByteArray []byte
//	TagString    string
//	TagList      NBTList
//	TagCompound  []*NBTNode (named, in encoding order)
//	TagIntArray  []int32
//	TagLongArray []int64
//
// Name is empty for list elements and for anonymous roots.
type NBTNode struct {
	Type  byte
	Name  string
	Value any
}

// NBTList is the value of a TagList: every item has type ElemType and no name.
type NBTList struct {
	ElemType byte
	Items    []*NBTNode
}

func NewCompound(name string, children ...*NBTNode) *NBTNode {
	if children == nil {
		children = []*NBTNode{}
	}
	return &NBTNode{Type: TagCompound, Name: name, Value: children}
}

func NewList(name string, elemType byte, items ...*NBTNode) *NBTNode {
	if items == nil {
		items = []*NBTNode{}
	}
	return &NBTNode{Type: TagList, Name: name, Value: NBTList{ElemType: elemType, Items: items}}
}

// Get returns the first child of a compound with the given name.
func (n *NBTNode) Get(name string) (*NBTNode, bool) {
	children, ok := n.Value.([]*NBTNode)
	if n.Type != TagCompound || !ok {
		return nil, false
	}
	for _, c := range children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (n *NBTNode) String() string {
	var sb strings.Builder
	n.format(&sb, 0)
	return sb.String()
}

func (n *NBTNode) format(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(tagName(n.Type))
	if n.Name != "" {
		fmt.Fprintf(sb, "(%q)", n.Name)
	}
	switch v := n.Value.(type) {
	case NBTList:
		fmt.Fprintf(sb, " [%d %s] {\n", len(v.Items), tagName(v.ElemType))
		for _, item := range v.Items {
			item.format(sb, indent+1)
		}
		sb.WriteString(strings.Repeat("  ", indent) + "}\n")
	case []*NBTNode:
		fmt.Fprintf(sb, " [%d] {\n", len(v))
		for _, c := range v {
			c.format(sb, indent+1)
		}
		sb.WriteString(strings.Repeat("  ", indent) + "}\n")
	case string:
		fmt.Fprintf(sb, " %q\n", v)
	default:
		fmt.Fprintf(sb, " %v\n", v)
	}
}

func tagName(t byte) string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ---------- 读取 ----------

// ReadNBT reads a named tag: id, name, payload. An End id yields an End node.
func ReadNBT(r io.Reader) (*NBTNode, error) {
	typeByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	if typeByte == TagEnd {
		return &NBTNode{Type: TagEnd}, nil
	}
	name, err := NBTReadString(r)
	if err != nil {
		return nil, fmt.Errorf("read tag name: %w", err)
	}
	node, err := readPayload(r, typeByte, 0)
	if err != nil {
		return nil, err
	}
	node.Name = name
	return node, nil
}

// ReadAnonymousNBT reads the network form used since 1.20.2: id then
// payload, with no root name.
func ReadAnonymousNBT(r io.Reader) (*NBTNode, error) {
	typeByte, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	if typeByte == TagEnd {
		return &NBTNode{Type: TagEnd}, nil
	}
	return readPayload(r, typeByte, 0)
}

func readPayload(r io.Reader, typeByte byte, depth int) (*NBTNode, error) {
	if depth > MaxNBTDepth {
		return nil, ErrNBTTooDeep
	}
	var (
		value any
		err   error
	)
	switch typeByte {
	case TagByte:
		value, err = ReadInt8(r)
	case TagShort:
		value, err = ReadInt16(r)
	case TagInt:
		value, err = ReadInt32(r)
	case TagLong:
		value, err = ReadInt64(r)
	case TagFloat:
		value, err = ReadFloat(r)
	case TagDouble:
		value, err = ReadDouble(r)
	case TagByteArray:
		value, err = NBTReadByteArray(r)
	case TagString:
		value, err = NBTReadString(r)
	case TagList:
		value, err = nbtReadList(r, depth)
	case TagCompound:
		value, err = nbtReadCompound(r, depth)
	case TagIntArray:
		value, err = NBTReadIntArray(r)
	case TagLongArray:
		value, err = NBTReadLongArray(r)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidNBTType, typeByte)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s payload: %w", tagName(typeByte), err)
	}
	return &NBTNode{Type: typeByte, Value: value}, nil
}

func nbtReadLength(r io.Reader) (int32, error) {
	length, err := ReadInt32(r)
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNBTLength, length)
	}
	// A Buffer knows how much is left; refuse lengths that cannot be satisfied
	// before allocating for them.
	if b, ok := r.(*Buffer); ok && int(length) > b.Len() {
		return 0, fmt.Errorf("%w: %d exceeds %d remaining bytes", ErrInvalidNBTLength, length, b.Len())
	}
	return length, nil
}

func NBTReadByteArray(r io.Reader) ([]byte, error) {
	length, err := nbtReadLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if err := readFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// NBTReadString reads a tag string: unsigned 16-bit length then UTF-8.
func NBTReadString(r io.Reader) (string, error) {
	length, err := ReadUnsignedShort(r)
	if err != nil {
		return "", err
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

func NBTReadIntArray(r io.Reader) ([]int32, error) {
	length, err := nbtReadLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]int32, length)
	for i := range data {
		if data[i], err = ReadInt32(r); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func NBTReadLongArray(r io.Reader) ([]int64, error) {
	length, err := nbtReadLength(r)
	if err != nil {
		return nil, err
	}
	data := make([]int64, length)
	for i := range data {
		if data[i], err = ReadInt64(r); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func nbtReadList(r io.Reader, depth int) (NBTList, error) {
	elementType, err := ReadByte(r)
	if err != nil {
		return NBTList{}, err
	}
	length, err := nbtReadLength(r)
	if err != nil {
		return NBTList{}, err
	}
	if elementType > TagLongArray {
		return NBTList{}, fmt.Errorf("%w: list element %d", ErrInvalidNBTType, elementType)
	}
	if elementType == TagEnd && length > 0 {
		return NBTList{}, fmt.Errorf("%w: list of End with %d elements", ErrInvalidNBTType, length)
	}
	list := NBTList{ElemType: elementType, Items: make([]*NBTNode, length)}
	for i := range list.Items {
		element, err := readPayload(r, elementType, depth+1)
		if err != nil {
			return NBTList{}, fmt.Errorf("list element %d: %w", i, err)
		}
		list.Items[i] = element
	}
	return list, nil
}

func nbtReadCompound(r io.Reader, depth int) ([]*NBTNode, error) {
	compound := []*NBTNode{}
	for {
		typeByte, err := ReadByte(r)
		if err != nil {
			return nil, err
		}
		if typeByte == TagEnd {
			return compound, nil
		}
		name, err := NBTReadString(r)
		if err != nil {
			return nil, fmt.Errorf("read tag name: %w", err)
		}
		child, err := readPayload(r, typeByte, depth+1)
		if err != nil {
			return nil, fmt.Errorf("compound entry %q: %w", name, err)
		}
		child.Name = name
		compound = append(compound, child)
	}
}

// ---------- 写入 ----------

// WriteNBT writes n as a named tag: id, name, payload. End is never a named
// tag, so it is rejected here and inside compounds.
func WriteNBT(w io.Writer, n *NBTNode) error {
	if n.Type == TagEnd {
		return fmt.Errorf("%w: End tag %q cannot be written as a named tag", ErrInvalidNBTType, n.Name)
	}
	if err := WriteByte(w, n.Type); err != nil {
		return err
	}
	if err := NBTWriteString(w, n.Name); err != nil {
		return err
	}
	return writePayload(w, n)
}

// WriteAnonymousNBT writes n without its name, as embedded in packets.
func WriteAnonymousNBT(w io.Writer, n *NBTNode) error {
	if err := WriteByte(w, n.Type); err != nil {
		return err
	}
	return writePayload(w, n)
}

// MarshalAnonymousNBT is WriteAnonymousNBT into a fresh byte slice.
func MarshalAnonymousNBT(n *NBTNode) ([]byte, error) {
	buf := NewBuffer(nil)
	if err := WriteAnonymousNBT(buf, n); err != nil {
		return nil, err
	}
	return buf.All(), nil
}

func NBTWriteString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("%w: tag string of %d bytes", ErrInvalidNBTLength, len(s))
	}
	if err := WriteUnsignedShort(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func valueTag(v any) byte {
	switch v.(type) {
	case int8:
		return TagByte
	case int16:
		return TagShort
	case int32:
		return TagInt
	case int64:
		return TagLong
	case float32:
		return TagFloat
	case float64:
		return TagDouble
	case []byte:
		return TagByteArray
	case string:
		return TagString
	case NBTList:
		return TagList
	case []*NBTNode:
		return TagCompound
	case []int32:
		return TagIntArray
	case []int64:
		return TagLongArray
	default:
		return TagEnd
	}
}

func writePayload(w io.Writer, n *NBTNode) error {
	if valueTag(n.Value) != n.Type {
		return fmt.Errorf("%w: cannot encode %T as %s", ErrInvalidNBTType, n.Value, tagName(n.Type))
	}
	var err error
	switch v := n.Value.(type) {
	case int8:
		err = WriteInt8(w, v)
	case int16:
		err = WriteInt16(w, v)
	case int32:
		err = WriteInt32(w, v)
	case int64:
		err = WriteInt64(w, v)
	case float32:
		err = WriteFloat(w, v)
	case float64:
		err = WriteDouble(w, v)
	case []byte:
		if err = WriteInt32(w, int32(len(v))); err == nil {
			_, err = w.Write(v)
		}
	case string:
		err = NBTWriteString(w, v)
	case NBTList:
		err = writeList(w, v)
	case []*NBTNode:
		for _, c := range v {
			if err = WriteNBT(w, c); err != nil {
				return err
			}
		}
		err = WriteByte(w, TagEnd)
	case []int32:
		if err = WriteInt32(w, int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err = WriteInt32(w, x); err != nil {
				return err
			}
		}
	case []int64:
		if err = WriteInt32(w, int32(len(v))); err != nil {
			return err
		}
		for _, x := range v {
			if err = WriteInt64(w, x); err != nil {
				return err
			}
		}
	}
	return err
}

func writeList(w io.Writer, l NBTList) error {
	if err := WriteByte(w, l.ElemType); err != nil {
		return err
	}
	if err := WriteInt32(w, int32(len(l.Items))); err != nil {
		return err
	}
	for i, item := range l.Items {
		if item.Type != l.ElemType {
			return fmt.Errorf("%w: list of %s holds %s at %d",
				ErrInvalidNBTType, tagName(l.ElemType), tagName(item.Type), i)
		}
		if err := writePayload(w, item); err != nil {
			return err
		}
	}
	return nil
}
