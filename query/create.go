package query

import (
	"context"

	"engineql/wire"
)

// Create builds a mutation inserting one record from the given field
// assignments, returning the created record with its default fields.
type Create[S Param, D any] struct {
	session Session
	info    Info
	sets    []S
}

// NewCreate starts a create mutation for the model described by info.
func NewCreate[S Param, D any](session Session, info Info, sets ...S) Create[S, D] {
	return Create[S, D]{session: session, info: info, sets: appendCopy[S](nil, sets...)}
}

// Set appends field assignments.
func (q Create[S, D]) Set(sets ...S) Create[S, D] {
	q.sets = appendCopy(q.sets, sets...)
	return q
}

// Operation extracts the finished write operation without executing it.
func (q Create[S, D]) Operation() wire.Operation {
	builder := wire.NewSelection("createOne" + q.info.Model).Alias(wire.ResultAlias)
	builder.PushArgument("data", pairsObject(q.sets))
	builder.NestedSelections(q.info.ScalarSelections...)
	return wire.Write(builder.Build())
}

// Exec dispatches the mutation and decodes the created record.
func (q Create[S, D]) Exec(ctx context.Context) (D, error) {
	var data D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		var zero D
		return zero, err
	}
	return data, nil
}
