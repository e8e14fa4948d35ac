package query

import (
	"context"

	"engineql/wire"
)

// Update builds a mutation applying set values to the one record matched by
// a unique filter, returning the updated record.
type Update[W Param, S Param, D any] struct {
	session Session
	info    Info
	wheres  []W
	sets    []S
}

// NewUpdate starts a single-record update for the model described by info.
func NewUpdate[W Param, S Param, D any](session Session, info Info, wheres []W, sets []S) Update[W, S, D] {
	return Update[W, S, D]{
		session: session,
		info:    info,
		wheres:  appendCopy[W](nil, wheres...),
		sets:    appendCopy[S](nil, sets...),
	}
}

// Set appends field assignments.
func (q Update[W, S, D]) Set(sets ...S) Update[W, S, D] {
	q.sets = appendCopy(q.sets, sets...)
	return q
}

// Operation extracts the finished write operation without executing it.
func (q Update[W, S, D]) Operation() wire.Operation {
	builder := wire.NewSelection("updateOne" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	builder.PushArgument("data", pairsObject(q.sets))
	builder.NestedSelections(q.info.ScalarSelections...)
	return wire.Write(builder.Build())
}

// Exec dispatches the mutation and decodes the updated record. A nil record
// with a nil error means the engine matched nothing.
func (q Update[W, S, D]) Exec(ctx context.Context) (*D, error) {
	var data *D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return nil, err
	}
	return data, nil
}
