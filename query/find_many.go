package query

import (
	"context"

	"engineql/wire"
)

// FindMany builds a query returning every record of a model that matches
// the accumulated filters. Type parameters are the model layer's generated
// parameter types plus the typed row D the results decode into; Set is
// carried only so the builder can convert into an update-many.
//
// The builder is a value: each accumulating call returns a new builder, and
// finalizing (Exec, Operation, or a conversion) never mutates the receiver.
type FindMany[W Param, R Relation, O Param, C Param, S Param, D any] struct {
	session Session
	info    Info
	args    ManyArgs[W, R, O, C]
}

// NewFindMany starts a find-many query for the model described by info,
// seeded with an initial filter list.
func NewFindMany[W Param, R Relation, O Param, C Param, S Param, D any](session Session, info Info, wheres ...W) FindMany[W, R, O, C, S, D] {
	return FindMany[W, R, O, C, S, D]{
		session: session,
		info:    info,
		args:    ManyArgs[W, R, O, C]{wheres: appendCopy[W](nil, wheres...)},
	}
}

// Where appends filter parameters to the accumulated list.
func (q FindMany[W, R, O, C, S, D]) Where(wheres ...W) FindMany[W, R, O, C, S, D] {
	q.args.wheres = appendCopy(q.args.wheres, wheres...)
	return q
}

// With eager-loads the given relations alongside the default fields.
func (q FindMany[W, R, O, C, S, D]) With(relations ...R) FindMany[W, R, O, C, S, D] {
	q.args = q.args.With(relations...)
	return q
}

// OrderBy appends ordering parameters.
func (q FindMany[W, R, O, C, S, D]) OrderBy(orders ...O) FindMany[W, R, O, C, S, D] {
	q.args = q.args.OrderBy(orders...)
	return q
}

// Cursor appends cursor-position parameters.
func (q FindMany[W, R, O, C, S, D]) Cursor(cursors ...C) FindMany[W, R, O, C, S, D] {
	q.args = q.args.Cursor(cursors...)
	return q
}

// Skip sets the number of matching records to skip. Skip(0) still emits an
// explicit skip argument.
func (q FindMany[W, R, O, C, S, D]) Skip(count int64) FindMany[W, R, O, C, S, D] {
	q.args = q.args.Skip(count)
	return q
}

// Take caps the number of records returned.
func (q FindMany[W, R, O, C, S, D]) Take(count int64) FindMany[W, R, O, C, S, D] {
	q.args = q.args.Take(count)
	return q
}

// toSelection finalizes the builder into its selection tree: the
// findMany<Model> field aliased to the fixed result key, the accumulated
// arguments, and the model's default scalar fields with any eager-loaded
// relations appended after them.
func (q FindMany[W, R, O, C, S, D]) toSelection() wire.Selection {
	args, relations := q.args.ToGraphQL()
	builder := wire.NewSelection("findMany" + q.info.Model).Alias(wire.ResultAlias)
	for _, arg := range args {
		builder.PushArgument(arg.Name, arg.Value)
	}
	builder.NestedSelections(appendCopy(q.info.ScalarSelections, relations...)...)
	return builder.Build()
}

// Operation extracts the finished read operation without executing it, so
// the query can be submitted as part of a batch.
func (q FindMany[W, R, O, C, S, D]) Operation() wire.Operation {
	return wire.Read(q.toSelection())
}

// Exec dispatches the query and decodes the matching rows.
func (q FindMany[W, R, O, C, S, D]) Exec(ctx context.Context) ([]D, error) {
	var data []D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Update converts the query into an update-many over the same filters,
// applying the given set values. Only the session, model info, and where
// list carry over; ordering, cursor, skip, take, and eager-loads are
// dropped because updateMany accepts none of them.
func (q FindMany[W, R, O, C, S, D]) Update(sets ...S) UpdateMany[W, S] {
	return UpdateMany[W, S]{
		session: q.session,
		info:    q.info,
		wheres:  appendCopy[W](nil, q.args.wheres...),
		sets:    appendCopy[S](nil, sets...),
	}
}

// Delete converts the query into a delete-many over the same filters. As
// with Update, only the session, model info, and where list carry over.
func (q FindMany[W, R, O, C, S, D]) Delete() DeleteMany[W] {
	return DeleteMany[W]{
		session: q.session,
		info:    q.info,
		wheres:  appendCopy[W](nil, q.args.wheres...),
	}
}

// Count converts the query into a count over the same filters. As with
// Update, only the session, model info, and where list carry over.
func (q FindMany[W, R, O, C, S, D]) Count() Count[W] {
	return Count[W]{
		session: q.session,
		info:    q.info,
		wheres:  appendCopy[W](nil, q.args.wheres...),
	}
}
