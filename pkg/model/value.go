package model

import (
	"bytes"
	"fmt"
)

// ValueType identifies the wire type of a sensor value.
type ValueType uint8

const (
	// ValueTypeBool is a boolean sensor value.
	ValueTypeBool ValueType = iota

	// ValueTypeInt is a signed 64-bit integer sensor value.
	ValueTypeInt

	// ValueTypeFloat is a 64-bit floating point sensor value.
	ValueTypeFloat

	// ValueTypeRaw is an opaque byte sequence.
	ValueTypeRaw
)

// String returns the type name.
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeBool:
		return "BOOL"
	case ValueTypeInt:
		return "INT"
	case ValueTypeFloat:
		return "FLOAT"
	case ValueTypeRaw:
		return "RAW"
	default:
		return "UNKNOWN"
	}
}

// Value is a typed sensor value. The Type field selects which of the
// payload fields is meaningful; the others are left at their zero value.
type Value struct {
	Type  ValueType
	Bool  bool
	Int   int64
	Float float64
	Raw   []byte
}

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value {
	return Value{Type: ValueTypeBool, Bool: v}
}

// IntValue returns an integer Value.
func IntValue(v int64) Value {
	return Value{Type: ValueTypeInt, Int: v}
}

// FloatValue returns a floating point Value.
func FloatValue(v float64) Value {
	return Value{Type: ValueTypeFloat, Float: v}
}

// RawValue returns an opaque byte Value.
func RawValue(v []byte) Value {
	return Value{Type: ValueTypeRaw, Raw: v}
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case ValueTypeBool:
		return v.Bool == other.Bool
	case ValueTypeInt:
		return v.Int == other.Int
	case ValueTypeFloat:
		return v.Float == other.Float
	case ValueTypeRaw:
		return bytes.Equal(v.Raw, other.Raw)
	default:
		return false
	}
}

// String returns a human-readable rendering of the value.
func (v Value) String() string {
	switch v.Type {
	case ValueTypeBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueTypeInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueTypeFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValueTypeRaw:
		return fmt.Sprintf("0x%x", v.Raw)
	default:
		return "<invalid>"
	}
}
