package sources

import (
	"encoding/json"
	"fmt"
)

// EncodeError reports that a supplied argument could not be serialized into
// a wire parameter. It is returned before anything is sent to the node.
type EncodeError struct {
	Value any
	Err   error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode rpc param of type %T: %v", e.Value, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a call completed but its result did not match the
// expected shape. It keeps the raw payload so callers can tell "the node
// errored" apart from "the node returned something unexpected".
type DecodeError struct {
	Method string
	Target string
	Raw    json.RawMessage
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s result into %s: %v (raw: %s)", e.Method, e.Target, e.Err, string(e.Raw))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
