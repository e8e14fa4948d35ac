package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engineql/engine"
	"engineql/query"
	"engineql/wire"
)

// fakeExecutor records dispatched operations and replays canned payloads,
// standing in for the HTTP engine client.
type fakeExecutor struct {
	lastOp   wire.Operation
	lastOps  []wire.Operation
	result   json.RawMessage
	batch    []json.RawMessage
	err      error
	executed int
}

func (f *fakeExecutor) Execute(_ context.Context, op wire.Operation, into any) error {
	f.lastOp = op
	f.executed++
	if f.err != nil {
		return f.err
	}
	if into == nil || f.result == nil {
		return nil
	}
	return json.Unmarshal(f.result, into)
}

func (f *fakeExecutor) ExecuteBatch(_ context.Context, ops []wire.Operation) ([]json.RawMessage, error) {
	f.lastOps = ops
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

func sessionWith(exec engine.Executor) query.Session {
	return query.NewSession(exec)
}

func TestFindManyExecDecodesRows(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`[{"id": 1, "name": "ada"}, {"id": 2, "name": "grace"}]`)}
	q := query.NewFindMany[testParam, testRelation, testParam, testParam, testParam, user](
		sessionWith(exec), userInfo(),
	)

	rows, err := q.Exec(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, user{ID: 1, Name: "ada"}, rows[0])
	assert.Equal(t, user{ID: 2, Name: "grace"}, rows[1])

	assert.Equal(t, wire.OperationRead, exec.lastOp.Type())
	assert.Equal(t, "findManyUser", exec.lastOp.Root().Name())
}

func TestCountExecDecodesAggregate(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`{"_count": {"_all": 42}}`)}
	q := query.NewCount[testParam](sessionWith(exec), userInfo())

	count, err := q.Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestUpdateManyExecDecodesCount(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`{"count": 3}`)}
	q := query.NewUpdateMany[testParam, testParam](
		sessionWith(exec), userInfo(),
		[]testParam{{field: "active", value: wire.Bool(false)}},
		[]testParam{{field: "active", value: wire.Bool(true)}},
	)

	count, err := q.Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, wire.OperationWrite, exec.lastOp.Type())
}

func TestFindFirstExecNilOnNoMatch(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`null`)}
	q := query.NewFindFirst[testParam, testRelation, testParam, testParam, user](
		sessionWith(exec), userInfo(),
	)

	got, err := q.Exec(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindUniqueExecDecodesRecord(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`{"id": 7, "name": "ada"}`)}
	q := query.NewFindUnique[testParam, testRelation, testParam, user](
		sessionWith(exec), userInfo(),
		testParam{field: "id", value: wire.Int(7)},
	)

	got, err := q.Exec(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user{ID: 7, Name: "ada"}, *got)
	assert.Equal(t, "findUniqueUser", exec.lastOp.Root().Name())
}

func TestCreateExecDecodesRecord(t *testing.T) {
	exec := &fakeExecutor{result: json.RawMessage(`{"id": 9, "name": "lin"}`)}
	q := query.NewCreate[testParam, user](
		sessionWith(exec), userInfo(),
		testParam{field: "name", value: wire.String("lin")},
	)

	got, err := q.Exec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, user{ID: 9, Name: "lin"}, got)
	assert.Equal(t, "createOneUser", exec.lastOp.Root().Name())
	assert.Equal(t, wire.OperationWrite, exec.lastOp.Type())
}

func TestEngineErrorsPropagateVerbatim(t *testing.T) {
	engineErr := &engine.Error{Message: "record not found", Code: "P2025"}
	exec := &fakeExecutor{err: engineErr}
	q := query.NewFindMany[testParam, testRelation, testParam, testParam, testParam, user](
		sessionWith(exec), userInfo(),
	)

	_, err := q.Exec(context.Background())
	require.Error(t, err)

	var got *engine.Error
	require.ErrorAs(t, err, &got)
	assert.Same(t, engineErr, got, "no wrapping, no retries, no recovery")
}

func TestExecWithoutEngineFails(t *testing.T) {
	q := newUserQuery()
	_, err := q.Exec(context.Background())
	require.ErrorIs(t, err, query.ErrNoEngine)
}

func TestBatchSubmitsAllOperations(t *testing.T) {
	exec := &fakeExecutor{batch: []json.RawMessage{
		json.RawMessage(`[{"id": 1, "name": "ada"}]`),
		json.RawMessage(`{"_count": {"_all": 5}}`),
	}}
	session := sessionWith(exec)

	users := query.NewFindMany[testParam, testRelation, testParam, testParam, testParam, user](
		session, userInfo(),
	)
	count := users.Count()

	raws, err := query.Batch(context.Background(), session, users, count)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	require.Len(t, exec.lastOps, 2)
	assert.Equal(t, "findManyUser", exec.lastOps[0].Root().Name())
	assert.Equal(t, "aggregateUser", exec.lastOps[1].Root().Name())
	assert.Zero(t, exec.executed, "batching must not dispatch single operations")

	rows, err := query.BatchResult[[]user](raws[0])
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, user{ID: 1, Name: "ada"}, rows[0])
}

func TestBatchResultNullPayload(t *testing.T) {
	got, err := query.BatchResult[*user](json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBatchResultMalformedPayload(t *testing.T) {
	_, err := query.BatchResult[[]user](json.RawMessage(`{"not": "a list"}`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, query.ErrNoEngine))
}
