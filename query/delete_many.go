package query

import (
	"context"

	"engineql/wire"
)

// DeleteMany builds a mutation removing every record matching the
// accumulated filters, returning the number removed.
type DeleteMany[W Param] struct {
	session Session
	info    Info
	wheres  []W
}

// NewDeleteMany starts a delete-many mutation for the model described by
// info.
func NewDeleteMany[W Param](session Session, info Info, wheres ...W) DeleteMany[W] {
	return DeleteMany[W]{session: session, info: info, wheres: appendCopy[W](nil, wheres...)}
}

// Where appends filter parameters.
func (q DeleteMany[W]) Where(wheres ...W) DeleteMany[W] {
	q.wheres = appendCopy(q.wheres, wheres...)
	return q
}

// Operation extracts the finished write operation without executing it.
func (q DeleteMany[W]) Operation() wire.Operation {
	builder := wire.NewSelection("deleteMany" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	builder.NestedSelections(wire.Scalar("count"))
	return wire.Write(builder.Build())
}

// Exec dispatches the mutation and returns the number of deleted records.
func (q DeleteMany[W]) Exec(ctx context.Context) (int64, error) {
	var data struct {
		Count int64 `json:"count"`
	}
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return 0, err
	}
	return data.Count, nil
}
