package query

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"engineql/wire"
)

// QueryRaw is the raw escape hatch for reads the typed builders cannot
// express. The statement is anything that renders to SQL text plus
// positional parameters, which covers both squirrel builders and literal
// sq.Expr statements. Rows decode into T via the engine's raw JSON shape.
type QueryRaw[T any] struct {
	session   Session
	statement sq.Sqlizer
}

// NewQueryRaw wraps a raw read statement.
func NewQueryRaw[T any](session Session, statement sq.Sqlizer) QueryRaw[T] {
	return QueryRaw[T]{session: session, statement: statement}
}

// Operation renders the statement into a raw-query write operation. The
// engine treats raw statements as mutations regardless of what they do,
// since it cannot inspect arbitrary SQL.
func (q QueryRaw[T]) Operation() (wire.Operation, error) {
	return rawOperation("queryRaw", q.statement)
}

// Exec dispatches the statement and decodes the returned rows.
func (q QueryRaw[T]) Exec(ctx context.Context) ([]T, error) {
	op, err := q.Operation()
	if err != nil {
		return nil, err
	}
	var data []T
	if err := q.session.execute(ctx, op, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ExecuteRaw is the raw escape hatch for writes, returning the number of
// rows the statement affected.
type ExecuteRaw struct {
	session   Session
	statement sq.Sqlizer
}

// NewExecuteRaw wraps a raw write statement.
func NewExecuteRaw(session Session, statement sq.Sqlizer) ExecuteRaw {
	return ExecuteRaw{session: session, statement: statement}
}

// Operation renders the statement into a raw-execute write operation.
func (q ExecuteRaw) Operation() (wire.Operation, error) {
	return rawOperation("executeRaw", q.statement)
}

// Exec dispatches the statement and returns the affected row count.
func (q ExecuteRaw) Exec(ctx context.Context) (int64, error) {
	op, err := q.Operation()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := q.session.execute(ctx, op, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// rawOperation renders a statement into the engine's raw protocol: the SQL
// text as the query argument and the positional parameters as a JSON list
// encoded into a string argument.
func rawOperation(field string, statement sq.Sqlizer) (wire.Operation, error) {
	sqlText, params, err := statement.ToSql()
	if err != nil {
		return wire.Operation{}, fmt.Errorf("build raw statement: %w", err)
	}

	values := make([]wire.Value, len(params))
	for i, param := range params {
		values[i] = rawParamValue(param)
	}
	encoded, err := json.Marshal(wire.List(values...))
	if err != nil {
		return wire.Operation{}, fmt.Errorf("encode raw parameters: %w", err)
	}

	builder := wire.NewSelection(field).Alias(wire.ResultAlias)
	builder.PushArgument("query", wire.String(sqlText))
	builder.PushArgument("parameters", wire.String(string(encoded)))
	return wire.Write(builder.Build()), nil
}

// rawParamValue maps a Go placeholder value onto the wire union. Types
// outside the union fall back to their string form, which the engine casts
// per the statement's column types.
func rawParamValue(param any) wire.Value {
	switch v := param.(type) {
	case nil:
		return wire.Null()
	case bool:
		return wire.Bool(v)
	case int:
		return wire.Int(int64(v))
	case int32:
		return wire.Int(int64(v))
	case int64:
		return wire.Int(v)
	case float32:
		return wire.Float(float64(v))
	case float64:
		return wire.Float(v)
	case string:
		return wire.String(v)
	case time.Time:
		return wire.DateTime(v)
	case []byte:
		return wire.Bytes(v)
	default:
		return wire.String(fmt.Sprint(v))
	}
}
