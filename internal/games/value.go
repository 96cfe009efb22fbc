package games

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindArray
)

// Value is a decoded document field. The zero Value is Null.
type Value struct {
	kind  Kind
	text  string
	num   int64
	items []Value
}

// Null returns the absent value.
func Null() Value { return Value{} }

// TextValue wraps a string.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// NumberValue wraps an integer. It is encoded as an exact JSON integer.
func NumberValue(n int64) Value { return Value{kind: KindNumber, num: n} }

// ArrayValue copies vs into an array value.
func ArrayValue(vs ...Value) Value {
	items := make([]Value, len(vs))
	copy(items, vs)
	return Value{kind: KindArray, items: items}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text of a Text value, or "".
func (v Value) Str() string { return v.text }

// Int returns the integer of a Number value, or 0.
func (v Value) Int() int64 { return v.num }

// Items returns the elements of an Array value, or nil.
func (v Value) Items() []Value { return v.items }

// MarshalJSON encodes Null as null, Text as a string, Number as an integer
// literal and Array as a JSON array. <, > and & are written as-is.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindText:
		return marshalUnescaped(v.text)
	case KindNumber:
		return strconv.AppendInt(nil, v.num, 10), nil
	case KindArray:
		if v.items == nil {
			return []byte("[]"), nil
		}
		return marshalUnescaped(v.items)
	}
	return nil, &json.UnsupportedValueError{Str: "games.Value kind " + strconv.Itoa(int(v.kind))}
}

func marshalUnescaped(x any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Document is one projected row keyed by column name.
type Document map[string]Value
