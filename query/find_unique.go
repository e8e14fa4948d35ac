package query

import (
	"context"

	"engineql/wire"
)

// FindUnique builds a query looking one record up by a unique filter, or
// nil when it does not exist. Unlike FindMany it takes no ordering, cursor,
// or bounds: a unique filter identifies at most one record. Set is carried
// only so the lookup can convert into a single-record update.
type FindUnique[W Param, R Relation, S Param, D any] struct {
	session Session
	info    Info
	wheres  []W
	withs   []R
}

// NewFindUnique starts a unique lookup for the model described by info.
func NewFindUnique[W Param, R Relation, S Param, D any](session Session, info Info, wheres ...W) FindUnique[W, R, S, D] {
	return FindUnique[W, R, S, D]{
		session: session,
		info:    info,
		wheres:  appendCopy[W](nil, wheres...),
	}
}

// With eager-loads the given relations.
func (q FindUnique[W, R, S, D]) With(relations ...R) FindUnique[W, R, S, D] {
	q.withs = appendCopy(q.withs, relations...)
	return q
}

// Operation extracts the finished read operation without executing it.
func (q FindUnique[W, R, S, D]) Operation() wire.Operation {
	builder := wire.NewSelection("findUnique" + q.info.Model).Alias(wire.ResultAlias)
	if len(q.wheres) > 0 {
		builder.PushArgument("where", pairsObject(q.wheres))
	}
	var relations []wire.Selection
	for _, with := range q.withs {
		relations = append(relations, with.RelationSelection())
	}
	builder.NestedSelections(appendCopy(q.info.ScalarSelections, relations...)...)
	return wire.Read(builder.Build())
}

// Exec dispatches the lookup. A nil record with a nil error means the
// record does not exist.
func (q FindUnique[W, R, S, D]) Exec(ctx context.Context) (*D, error) {
	var data *D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Update converts the lookup into a single-record update over the same
// unique filter, applying the given set values. Eager-loads are dropped.
func (q FindUnique[W, R, S, D]) Update(sets ...S) Update[W, S, D] {
	return Update[W, S, D]{
		session: q.session,
		info:    q.info,
		wheres:  appendCopy[W](nil, q.wheres...),
		sets:    appendCopy[S](nil, sets...),
	}
}

// Delete converts the lookup into a single-record delete over the same
// unique filter. Eager-loads are dropped.
func (q FindUnique[W, R, S, D]) Delete() Delete[W, D] {
	return Delete[W, D]{
		session: q.session,
		info:    q.info,
		wheres:  appendCopy[W](nil, q.wheres...),
	}
}
