package query

import (
	"context"

	"engineql/wire"
)

// Delete builds a mutation removing the one record matched by a unique
// filter, returning the removed record.
type Delete[W Param, D any] struct {
	session Session
	info    Info
	wheres  []W
}

// NewDelete starts a single-record delete for the model described by info.
func NewDelete[W Param, D any](session Session, info Info, wheres ...W) Delete[W, D] {
	return Delete[W, D]{session: session, info: info, wheres: appendCopy[W](nil, wheres...)}
}

// Operation extracts the finished write operation without executing it.
func (q Delete[W, D]) Operation() wire.Operation {
	builder := wire.NewSelection("deleteOne" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	builder.NestedSelections(q.info.ScalarSelections...)
	return wire.Write(builder.Build())
}

// Exec dispatches the mutation and decodes the removed record. A nil record
// with a nil error means the engine matched nothing.
func (q Delete[W, D]) Exec(ctx context.Context) (*D, error) {
	var data *D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return nil, err
	}
	return data, nil
}
