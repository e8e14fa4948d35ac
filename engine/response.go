package engine

import (
	"encoding/json"
	"fmt"

	"engineql/wire"
)

// envelope is the engine's response framing: a data payload plus a list of
// request-scoped errors.
type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []responseError `json:"errors"`
}

type responseError struct {
	Error           string           `json:"error"`
	UserFacingError *userFacingError `json:"user_facing_error"`
}

type userFacingError struct {
	Message   string         `json:"message"`
	ErrorCode string         `json:"error_code"`
	Meta      map[string]any `json:"meta"`
}

// err converts the first reported error into an *Error, or returns nil when
// the envelope carries none.
func (e envelope) err() error {
	if len(e.Errors) == 0 {
		return nil
	}
	first := e.Errors[0]
	if ufe := first.UserFacingError; ufe != nil {
		return &Error{
			Message: ufe.Message,
			Code:    ufe.ErrorCode,
			Meta:    ufe.Meta,
		}
	}
	return &Error{Message: first.Error}
}

// result unwraps the payload stored under the fixed root alias. Every
// operation aliases its root field to the same key, so decoding never needs
// to know which model produced the response.
func (e envelope) result() (json.RawMessage, error) {
	if len(e.Data) == 0 {
		return nil, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &fields); err != nil {
		return nil, fmt.Errorf("malformed engine data payload: %w", err)
	}
	return fields[wire.ResultAlias], nil
}
