package query

import (
	"context"

	"engineql/wire"
)

// UpdateMany builds a mutation applying the same set values to every record
// matching the accumulated filters. It returns the number of records
// touched, not the records themselves.
type UpdateMany[W Param, S Param] struct {
	session Session
	info    Info
	wheres  []W
	sets    []S
}

// NewUpdateMany starts an update-many mutation for the model described by
// info.
func NewUpdateMany[W Param, S Param](session Session, info Info, wheres []W, sets []S) UpdateMany[W, S] {
	return UpdateMany[W, S]{
		session: session,
		info:    info,
		wheres:  appendCopy[W](nil, wheres...),
		sets:    appendCopy[S](nil, sets...),
	}
}

// Where appends filter parameters.
func (q UpdateMany[W, S]) Where(wheres ...W) UpdateMany[W, S] {
	q.wheres = appendCopy(q.wheres, wheres...)
	return q
}

// Set appends field assignments.
func (q UpdateMany[W, S]) Set(sets ...S) UpdateMany[W, S] {
	q.sets = appendCopy(q.sets, sets...)
	return q
}

// Operation extracts the finished write operation without executing it.
func (q UpdateMany[W, S]) Operation() wire.Operation {
	builder := wire.NewSelection("updateMany" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	builder.PushArgument("data", pairsObject(q.sets))
	builder.NestedSelections(wire.Scalar("count"))
	return wire.Write(builder.Build())
}

// Exec dispatches the mutation and returns the number of updated records.
func (q UpdateMany[W, S]) Exec(ctx context.Context) (int64, error) {
	var data struct {
		Count int64 `json:"count"`
	}
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return 0, err
	}
	return data.Count, nil
}
