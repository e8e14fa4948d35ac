package query

import (
	"context"

	"engineql/wire"
)

// Count builds a query returning the number of records matching the
// accumulated filters, via the model's aggregate field.
type Count[W Param] struct {
	session Session
	info    Info
	wheres  []W
}

// NewCount starts a count query for the model described by info.
func NewCount[W Param](session Session, info Info, wheres ...W) Count[W] {
	return Count[W]{session: session, info: info, wheres: appendCopy[W](nil, wheres...)}
}

// Where appends filter parameters.
func (q Count[W]) Where(wheres ...W) Count[W] {
	q.wheres = appendCopy(q.wheres, wheres...)
	return q
}

// Operation extracts the finished read operation without executing it.
func (q Count[W]) Operation() wire.Operation {
	builder := wire.NewSelection("aggregate" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	builder.NestedSelections(
		wire.NewSelection("_count").NestedSelections(wire.Scalar("_all")).Build(),
	)
	return wire.Read(builder.Build())
}

// Exec dispatches the query and returns the matching record count.
func (q Count[W]) Exec(ctx context.Context) (int64, error) {
	var data struct {
		Count struct {
			All int64 `json:"_all"`
		} `json:"_count"`
	}
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return 0, err
	}
	return data.Count.All, nil
}
