package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"engineql/wire"
)

// BatchQuery is any finalized-but-unexecuted builder that can surrender its
// operation tree without dispatching it. Every builder in this package
// satisfies it.
type BatchQuery interface {
	Operation() wire.Operation
}

// Batch extracts each query's operation and submits them to the engine as
// one batch unit, returning the raw result payload of each operation in
// submission order. Extraction copies by value, so mutating a builder after
// batching never reaches the submitted operations.
func Batch(ctx context.Context, session Session, queries ...BatchQuery) ([]json.RawMessage, error) {
	ops := make([]wire.Operation, len(queries))
	for i, q := range queries {
		ops[i] = q.Operation()
	}
	return session.executeBatch(ctx, ops)
}

// BatchResult decodes one raw batch payload into its declared result type.
// The conversion is an identity decode: the raw payload and the declared
// type share the same shape, so no transformation happens here.
func BatchResult[T any](raw json.RawMessage) (T, error) {
	var data T
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		var zero T
		return zero, fmt.Errorf("decode batch result: %w", err)
	}
	return data, nil
}
