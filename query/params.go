// Package query holds the typed query builders: fluent, value-semantic
// accumulators that collapse caller-supplied filter, ordering, cursor, and
// set parameters into a single immutable wire operation. Builders are pure
// until the terminal Exec call; everything before that is side-effect-free
// value construction, so dropping a builder cancels nothing because nothing
// has happened yet.
//
// The parameter types themselves come from an external model layer, one set
// per model. The builders only require that each converts to a common wire
// pair, so every model's generated types plug into the same generic
// machinery.
package query

import "engineql/wire"

// Param is the conversion bound shared by where, order-by, cursor, and set
// parameter types: each yields one (field, value) wire pair. Keeping field
// names unique within one query is the model layer's contract, not this
// package's.
type Param interface {
	FieldValue() (string, wire.Value)
}

// Relation is the bound for eager-load parameters: each yields the child
// selection to append for one relation field.
type Relation interface {
	RelationSelection() wire.Selection
}

// pairsObject collapses params into one object value, in call order.
// Duplicate field names follow the merge rule: stable key order, last value
// wins.
func pairsObject[P Param](params []P) wire.Value {
	fields := make([]wire.Field, 0, len(params))
	for _, param := range params {
		name, value := param.FieldValue()
		fields = append(fields, wire.Field{Name: name, Value: value})
	}
	return wire.MergedObject(fields)
}

// appendCopy joins two slices into a fresh backing array. Builders are
// value-semantic; sharing a backing array between an old and a new builder
// would let one chain's append bleed into another's.
func appendCopy[T any](existing []T, added ...T) []T {
	out := make([]T, 0, len(existing)+len(added))
	out = append(out, existing...)
	out = append(out, added...)
	return out
}
