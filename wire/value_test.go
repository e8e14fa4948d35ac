package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergedObjectStableOrderLastWins(t *testing.T) {
	merged := MergedObject([]Field{
		{Name: "age", Value: Int(18)},
		{Name: "name", Value: String("ada")},
		{Name: "age", Value: Int(21)},
	})

	fields := merged.ObjectFields()
	require.Len(t, fields, 2, "duplicate key must collapse into one entry")

	assert.Equal(t, "age", fields[0].Name, "first-occurrence position is kept")
	assert.Equal(t, int64(21), fields[0].Value.IntValue(), "last value wins")
	assert.Equal(t, "name", fields[1].Name)
}

func TestMergedObjectIsFlat(t *testing.T) {
	inner1 := Object(Field{Name: "gt", Value: Int(10)})
	inner2 := Object(Field{Name: "lt", Value: Int(20)})

	merged := MergedObject([]Field{
		{Name: "age", Value: inner1},
		{Name: "age", Value: inner2},
	})

	fields := merged.ObjectFields()
	require.Len(t, fields, 1)
	// Flat merge: the later nested object replaces the earlier one wholesale.
	require.Len(t, fields[0].Value.ObjectFields(), 1)
	assert.Equal(t, "lt", fields[0].Value.ObjectFields()[0].Name)
}

func TestValueKinds(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		val  Value
		kind Kind
	}{
		{name: "null", val: Null(), kind: KindNull},
		{name: "zero value is null", val: Value{}, kind: KindNull},
		{name: "bool", val: Bool(true), kind: KindBool},
		{name: "int", val: Int(-7), kind: KindInt},
		{name: "float", val: Float(2.5), kind: KindFloat},
		{name: "string", val: String("x"), kind: KindString},
		{name: "enum", val: Enum("asc"), kind: KindEnum},
		{name: "datetime", val: DateTime(ts), kind: KindDateTime},
		{name: "bytes", val: Bytes([]byte{1, 2}), kind: KindBytes},
		{name: "list", val: List(Int(1), Int(2)), kind: KindList},
		{name: "object", val: Object(Field{Name: "a", Value: Int(1)}), kind: KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.val.Kind())
		})
	}
}

func TestBytesConstructorCopiesInput(t *testing.T) {
	raw := []byte{1, 2, 3}
	val := Bytes(raw)
	raw[0] = 9

	assert.Equal(t, []byte{1, 2, 3}, val.BytesValue())
}

func TestMarshalJSONDeterministic(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	val := Object(
		Field{Name: "z", Value: Int(1)},
		Field{Name: "a", Value: String("two")},
		Field{Name: "list", Value: List(Bool(true), Null())},
		Field{Name: "at", Value: DateTime(ts)},
	)

	encoded, err := json.Marshal(val)
	require.NoError(t, err)

	// Insertion order survives, unlike a map-backed encoding.
	assert.Equal(t,
		`{"z":1,"a":"two","list":[true,null],"at":"2024-05-01T12:30:00Z"}`,
		string(encoded),
	)
}

func TestMarshalJSONInt64(t *testing.T) {
	encoded, err := json.Marshal(Int(9007199254740993))
	require.NoError(t, err)
	// Encoded digit-exact, not through a float64.
	assert.Equal(t, "9007199254740993", string(encoded))
}

func TestMarshalJSONBytes(t *testing.T) {
	encoded, err := json.Marshal(Bytes([]byte("hi")))
	require.NoError(t, err)
	assert.Equal(t, `"aGk="`, string(encoded))
}
