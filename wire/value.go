// Package wire defines the wire-level query representation handed to the
// query engine: tagged argument values, field selection trees, and the
// read/write operations built from them. Builders in the query package emit
// into this package; the engine package renders it to a canonical GraphQL
// document.
package wire

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindEnum
	KindDateTime
	KindBytes
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindDateTime:
		return "datetime"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is an immutable tagged union covering every argument value the
// engine accepts. Object values preserve insertion order and hold unique
// keys; constructing one with duplicate keys resolves per the merge rule
// (stable key order, last value wins).
type Value struct {
	kind     Kind
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	timeVal  time.Time
	bytesVal []byte
	listVal  []Value
	objVal   []Field
}

// Field is one ordered entry of an object value.
type Field struct {
	Name  string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Int returns a 64-bit signed integer value.
func Int(i int64) Value { return Value{kind: KindInt, intVal: i} }

// Float returns a 64-bit float value.
func Float(f float64) Value { return Value{kind: KindFloat, floatVal: f} }

// String returns a UTF-8 string value.
func String(s string) Value { return Value{kind: KindString, strVal: s} }

// Enum returns an enum value, rendered as a bare identifier.
func Enum(s string) Value { return Value{kind: KindEnum, strVal: s} }

// DateTime returns a timestamp value, rendered as an RFC 3339 string.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, timeVal: t} }

// Bytes returns a binary value, rendered as a base64 string.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytesVal: append([]byte(nil), b...)}
}

// List returns a list value preserving element order.
func List(values ...Value) Value {
	return Value{kind: KindList, listVal: append([]Value(nil), values...)}
}

// Object returns an object value from the given fields. Duplicate field
// names resolve per MergedObject.
func Object(fields ...Field) Value {
	return MergedObject(fields)
}

// Kind reports the variant stored in v. The zero Value is null.
func (v Value) Kind() Kind { return v.kind }

// BoolValue returns the boolean payload; valid only for KindBool.
func (v Value) BoolValue() bool { return v.boolVal }

// IntValue returns the integer payload; valid only for KindInt.
func (v Value) IntValue() int64 { return v.intVal }

// FloatValue returns the float payload; valid only for KindFloat.
func (v Value) FloatValue() float64 { return v.floatVal }

// StringValue returns the string payload; valid for KindString and KindEnum.
func (v Value) StringValue() string { return v.strVal }

// TimeValue returns the timestamp payload; valid only for KindDateTime.
func (v Value) TimeValue() time.Time { return v.timeVal }

// BytesValue returns the binary payload; valid only for KindBytes.
func (v Value) BytesValue() []byte { return append([]byte(nil), v.bytesVal...) }

// ListValues returns the list elements in order; valid only for KindList.
// The returned slice must not be modified.
func (v Value) ListValues() []Value { return v.listVal }

// ObjectFields returns the object entries in insertion order; valid only
// for KindObject. The returned slice must not be modified.
func (v Value) ObjectFields() []Field { return v.objVal }

// MarshalJSON encodes the value deterministically: integers as 64-bit
// signed numbers, objects as ordered key/value sequences, lists in order,
// timestamps as RFC 3339 strings, and binary data as base64. The engine
// relies on this shape for reproducible fingerprints and logs.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindInt:
		return []byte(strconv.FormatInt(v.intVal, 10)), nil
	case KindFloat:
		return json.Marshal(v.floatVal)
	case KindString, KindEnum:
		return json.Marshal(v.strVal)
	case KindDateTime:
		return json.Marshal(v.timeVal.Format(time.RFC3339Nano))
	case KindBytes:
		return json.Marshal(base64.StdEncoding.EncodeToString(v.bytesVal))
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.listVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			encoded, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, field := range v.objVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(field.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			encoded, err := field.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.kind)
	}
}
