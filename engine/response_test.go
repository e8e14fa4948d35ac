package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeErrPrefersUserFacingError(t *testing.T) {
	env := envelope{Errors: []responseError{{
		Error: "raw engine text",
		UserFacingError: &userFacingError{
			Message:   "Unique constraint failed",
			ErrorCode: "P2002",
			Meta:      map[string]any{"target": "email"},
		},
	}}}

	err := env.err()
	require.Error(t, err)

	var engineErr *Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "Unique constraint failed", engineErr.Message)
	assert.Equal(t, "P2002", engineErr.Code)
	assert.Equal(t, "email", engineErr.Meta["target"])
	assert.Equal(t, "engine error P2002: Unique constraint failed", engineErr.Error())
}

func TestEnvelopeErrFallsBackToRawError(t *testing.T) {
	env := envelope{Errors: []responseError{{Error: "connection reset"}}}

	var engineErr *Error
	require.ErrorAs(t, env.err(), &engineErr)
	assert.Equal(t, "connection reset", engineErr.Message)
	assert.Empty(t, engineErr.Code)
	assert.Equal(t, "engine error: connection reset", engineErr.Error())
}

func TestEnvelopeErrNilWhenClean(t *testing.T) {
	assert.NoError(t, envelope{}.err())
}

func TestEnvelopeResultUnwrapsAlias(t *testing.T) {
	env := envelope{Data: json.RawMessage(`{"result": [{"id": 1}]}`)}

	raw, err := env.result()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id": 1}]`, string(raw))
}

func TestEnvelopeResultMissingAlias(t *testing.T) {
	env := envelope{Data: json.RawMessage(`{"other": 1}`)}

	raw, err := env.result()
	require.NoError(t, err)
	assert.Nil(t, raw, "a response without the alias carries no payload")
}

func TestEnvelopeResultMalformedData(t *testing.T) {
	env := envelope{Data: json.RawMessage(`"not an object"`)}

	_, err := env.result()
	require.Error(t, err)
}

func TestDecodeResultNullLeavesTargetUntouched(t *testing.T) {
	var target *struct{ ID int }
	require.NoError(t, decodeResult(json.RawMessage(`null`), &target))
	assert.Nil(t, target)

	require.NoError(t, decodeResult(nil, &target))
	assert.Nil(t, target)

	require.NoError(t, decodeResult(json.RawMessage(`{"ID": 1}`), nil))
}
