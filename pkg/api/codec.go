// Package api defines the ballot.v1 Connect services: message types,
// procedure names, handler constructors and typed clients. Messages are plain
// Go structs carried by a JSON codec.
package api

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
)

// codecName matches the Connect protocol's "json" sub-type so that clients
// send and expect application/json.
const codecName = "json"

type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// WithJSON registers the JSON codec. It replaces Connect's protobuf JSON
// codec, which only handles generated messages.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}

// ErrorReasonHeader carries the domain reason of a failed call so clients can
// tell apart errors that share a Connect code.
const ErrorReasonHeader = "Vote-Error"

// ErrorReason returns the domain reason attached to err, if any.
func ErrorReason(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ErrorReasonHeader)
}
