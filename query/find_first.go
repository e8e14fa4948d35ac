package query

import (
	"context"

	"engineql/wire"
)

// FindFirst builds a query returning the first record matching the
// accumulated filters, or nil when nothing matches. It accepts the same
// ordering, cursor, and skip/take parameters as FindMany.
type FindFirst[W Param, R Relation, O Param, C Param, D any] struct {
	session Session
	info    Info
	args    ManyArgs[W, R, O, C]
}

// NewFindFirst starts a find-first query for the model described by info.
func NewFindFirst[W Param, R Relation, O Param, C Param, D any](session Session, info Info, wheres ...W) FindFirst[W, R, O, C, D] {
	return FindFirst[W, R, O, C, D]{
		session: session,
		info:    info,
		args:    ManyArgs[W, R, O, C]{wheres: appendCopy[W](nil, wheres...)},
	}
}

// Where appends filter parameters.
func (q FindFirst[W, R, O, C, D]) Where(wheres ...W) FindFirst[W, R, O, C, D] {
	q.args.wheres = appendCopy(q.args.wheres, wheres...)
	return q
}

// With eager-loads the given relations.
func (q FindFirst[W, R, O, C, D]) With(relations ...R) FindFirst[W, R, O, C, D] {
	q.args = q.args.With(relations...)
	return q
}

// OrderBy appends ordering parameters, which decide which match is first.
func (q FindFirst[W, R, O, C, D]) OrderBy(orders ...O) FindFirst[W, R, O, C, D] {
	q.args = q.args.OrderBy(orders...)
	return q
}

// Cursor appends cursor-position parameters.
func (q FindFirst[W, R, O, C, D]) Cursor(cursors ...C) FindFirst[W, R, O, C, D] {
	q.args = q.args.Cursor(cursors...)
	return q
}

// Skip sets the number of matches to pass over before taking the first.
func (q FindFirst[W, R, O, C, D]) Skip(count int64) FindFirst[W, R, O, C, D] {
	q.args = q.args.Skip(count)
	return q
}

// Take caps how many records the engine considers. The result is still a
// single record; take bounds the scan window the first match comes from.
func (q FindFirst[W, R, O, C, D]) Take(count int64) FindFirst[W, R, O, C, D] {
	q.args = q.args.Take(count)
	return q
}

// Operation extracts the finished read operation without executing it.
func (q FindFirst[W, R, O, C, D]) Operation() wire.Operation {
	args, relations := q.args.ToGraphQL()
	builder := wire.NewSelection("findFirst" + q.info.Model).Alias(wire.ResultAlias)
	for _, arg := range args {
		builder.PushArgument(arg.Name, arg.Value)
	}
	builder.NestedSelections(appendCopy(q.info.ScalarSelections, relations...)...)
	return wire.Read(builder.Build())
}

// Exec dispatches the query. A nil record with a nil error means no match.
func (q FindFirst[W, R, O, C, D]) Exec(ctx context.Context) (*D, error) {
	var data *D
	if err := q.session.execute(ctx, q.Operation(), &data); err != nil {
		return nil, err
	}
	return data, nil
}
