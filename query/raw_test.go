package query_test

import (
	"context"
	"encoding/json"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engineql/query"
	"engineql/wire"
)

func TestQueryRawOperation(t *testing.T) {
	statement := sq.Select("id", "name").From("users").Where(sq.Eq{"id": 7})
	q := query.NewQueryRaw[user](query.NewSession(nil), statement)

	op, err := q.Operation()
	require.NoError(t, err)
	assert.Equal(t, wire.OperationWrite, op.Type())

	root := op.Root()
	assert.Equal(t, "queryRaw", root.Name())
	assert.Equal(t, wire.ResultAlias, root.Alias())

	args := root.Arguments()
	require.Len(t, args, 2)
	assert.Equal(t, "query", args[0].Name)
	assert.Equal(t, "SELECT id, name FROM users WHERE id = ?", args[0].Value.StringValue())
	assert.Equal(t, "parameters", args[1].Name)
	assert.Equal(t, "[7]", args[1].Value.StringValue())
}

func TestQueryRawParameterEncoding(t *testing.T) {
	statement := sq.Expr("SELECT * FROM users WHERE name = ? AND active = ? AND score > ?",
		"ada", true, 1.5)
	q := query.NewQueryRaw[user](query.NewSession(nil), statement)

	op, err := q.Operation()
	require.NoError(t, err)

	params, ok := findArgument(t, op.Root(), "parameters")
	require.True(t, ok)
	assert.Equal(t, `["ada",true,1.5]`, params.Value.StringValue())
}

func TestExecuteRawExec(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`4`)}
	statement := sq.Expr("DELETE FROM users WHERE active = ?", false)

	count, err := query.NewExecuteRaw(sessionWith(exec), statement).Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.Equal(t, "executeRaw", exec.lastOp.Root().Name())
	assert.Equal(t, wire.OperationWrite, exec.lastOp.Type())
}

func TestQueryRawInvalidStatement(t *testing.T) {
	// A select with no columns cannot render.
	statement := sq.SelectBuilder{}
	_, err := query.NewQueryRaw[user](query.NewSession(nil), statement).Operation()
	require.Error(t, err)
}
