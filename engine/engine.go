// Package engine is the execution boundary: it takes finished wire
// operations, ships them to the query engine, and hands typed results back.
// Nothing in this package retries or recovers; every engine failure
// surfaces verbatim to the caller.
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"engineql/wire"
)

// Executor dispatches operations to a query engine. Execute runs one
// operation and decodes its result payload into the value pointed to by
// into (which may be nil to discard the payload). ExecuteBatch submits
// several operations as one unit and returns the raw result payload of
// each, in order.
type Executor interface {
	Execute(ctx context.Context, op wire.Operation, into any) error
	ExecuteBatch(ctx context.Context, ops []wire.Operation) ([]json.RawMessage, error)
}

// Error is an error reported by the engine: a validation failure, a
// constraint violation, or any other failure the engine attributes to the
// request. It is propagated unchanged.
type Error struct {
	// Message is the engine's human-readable description.
	Message string
	// Code is the engine's stable error code, when one was supplied.
	Code string
	// Meta carries any structured detail attached to the error.
	Meta map[string]any
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("engine error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("engine error: %s", e.Message)
}
