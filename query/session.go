package query

import (
	"context"
	"encoding/json"
	"errors"

	"engineql/engine"
	"engineql/internal/logging"
	"engineql/wire"
)

// ErrNoEngine is returned when a builder is executed against a session that
// was never given an engine executor.
var ErrNoEngine = errors.New("query: session has no engine attached")

// Session is the execution context shared by every builder: the engine
// boundary plus an optional logger. Sessions are cheap values; the model
// layer typically embeds one per client.
type Session struct {
	engine engine.Executor
	logger *logging.Logger
}

// NewSession wraps an engine executor. The executor may be nil for
// builders that are only ever rendered or batched elsewhere; executing
// against a nil executor fails with ErrNoEngine.
func NewSession(exec engine.Executor) Session {
	return Session{engine: exec}
}

// WithLogger returns a session that logs each dispatched operation.
func (s Session) WithLogger(logger *logging.Logger) Session {
	s.logger = logger
	return s
}

func (s Session) execute(ctx context.Context, op wire.Operation, into any) error {
	if s.engine == nil {
		return ErrNoEngine
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "executing operation",
			"operation_type", string(op.Type()),
			"root", op.Root().Name(),
		)
	}
	return s.engine.Execute(ctx, op, into)
}

func (s Session) executeBatch(ctx context.Context, ops []wire.Operation) ([]json.RawMessage, error) {
	if s.engine == nil {
		return nil, ErrNoEngine
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "executing batch", "operations", len(ops))
	}
	return s.engine.ExecuteBatch(ctx, ops)
}
