package query

import (
	"context"

	"engineql/wire"
)

// Projection describes exactly which fields to fetch, paired with the
// narrowed Go type D the rows decode into. The model layer generates one
// projection constructor per selectable shape; this package treats the
// field list as opaque.
type Projection[D any] struct {
	selections []wire.Selection
}

// NewProjection builds a projection from an explicit field list.
func NewProjection[D any](selections ...wire.Selection) Projection[D] {
	return Projection[D]{selections: appendCopy[wire.Selection](nil, selections...)}
}

// Selections returns the projected fields in order. The returned slice must
// not be modified.
func (p Projection[D]) Selections() []wire.Selection {
	return p.selections
}

// SelectQuery is a find-many narrowed by a projection, finalized at
// construction. Its operation is already frozen; only execution remains.
type SelectQuery[T any] struct {
	session Session
	op      wire.Operation
}

// Operation extracts the frozen read operation without executing it.
func (q SelectQuery[T]) Operation() wire.Operation {
	return q.op
}

// Exec dispatches the query and decodes the projected rows.
func (q SelectQuery[T]) Exec(ctx context.Context) (T, error) {
	var data T
	if err := q.session.execute(ctx, q.op, &data); err != nil {
		var zero T
		return zero, err
	}
	return data, nil
}

// Select finalizes a find-many with an explicit projection. The projection
// owns the entire child field set: the model's default scalars are replaced
// wholesale, and relations accumulated via With are not appended either. A
// projection that wants relation data enumerates it itself.
func Select[PD any, W Param, R Relation, O Param, C Param, S Param, D any](q FindMany[W, R, O, C, S, D], projection Projection[PD]) SelectQuery[[]PD] {
	args, _ := q.args.ToGraphQL()
	builder := wire.NewSelection("findMany" + q.info.Model).Alias(wire.ResultAlias)
	for _, arg := range args {
		builder.PushArgument(arg.Name, arg.Value)
	}
	builder.NestedSelections(projection.Selections()...)
	return SelectQuery[[]PD]{
		session: q.session,
		op:      wire.Read(builder.Build()),
	}
}
