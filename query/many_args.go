package query

import "engineql/wire"

// ManyArgs accumulates the parameters common to the *-many query kinds:
// where filters, eager-loaded relations, ordering, a cursor position, and
// skip/take bounds. It is generic over the model layer's parameter types
// and independent of any particular query kind.
//
// All methods are value transforms: they return a new accumulator and leave
// the receiver untouched.
type ManyArgs[W Param, R Relation, O Param, C Param] struct {
	wheres  []W
	withs   []R
	orders  []O
	cursors []C
	skip    *int64
	take    *int64
}

// With registers relations to eager-load alongside the default fields.
func (a ManyArgs[W, R, O, C]) With(relations ...R) ManyArgs[W, R, O, C] {
	a.withs = appendCopy(a.withs, relations...)
	return a
}

// OrderBy appends ordering parameters.
func (a ManyArgs[W, R, O, C]) OrderBy(orders ...O) ManyArgs[W, R, O, C] {
	a.orders = appendCopy(a.orders, orders...)
	return a
}

// Cursor appends cursor-position parameters.
func (a ManyArgs[W, R, O, C]) Cursor(cursors ...C) ManyArgs[W, R, O, C] {
	a.cursors = appendCopy(a.cursors, cursors...)
	return a
}

// Skip sets the number of records to skip. Zero is a real value, distinct
// from not calling Skip at all.
func (a ManyArgs[W, R, O, C]) Skip(count int64) ManyArgs[W, R, O, C] {
	a.skip = &count
	return a
}

// Take sets the maximum number of records to return.
func (a ManyArgs[W, R, O, C]) Take(count int64) ManyArgs[W, R, O, C] {
	a.take = &count
	return a
}

// ToGraphQL flattens the accumulated state into wire arguments and relation
// selections. Each of where, orderBy, and cursor appears iff its parameter
// list is non-empty; skip and take appear iff they were set, zero included.
func (a ManyArgs[W, R, O, C]) ToGraphQL() ([]wire.Argument, []wire.Selection) {
	var args []wire.Argument
	if len(a.wheres) > 0 {
		args = append(args, wire.Argument{Name: "where", Value: pairsObject(a.wheres)})
	}
	if len(a.orders) > 0 {
		args = append(args, wire.Argument{Name: "orderBy", Value: pairsObject(a.orders)})
	}
	if len(a.cursors) > 0 {
		args = append(args, wire.Argument{Name: "cursor", Value: pairsObject(a.cursors)})
	}
	if a.skip != nil {
		args = append(args, wire.Argument{Name: "skip", Value: wire.Int(*a.skip)})
	}
	if a.take != nil {
		args = append(args, wire.Argument{Name: "take", Value: wire.Int(*a.take)})
	}

	var relations []wire.Selection
	for _, with := range a.withs {
		relations = append(relations, with.RelationSelection())
	}
	return args, relations
}
