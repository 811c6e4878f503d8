package goreql

import (
	"encoding/json"
	"fmt"

	"github.com/arashi-io/goreql/internal/protocol"
)

// Sentinel errors re-exported from the protocol layer so callers can match
// them with errors.Is without importing an internal package.
var (
	ErrNoDataReceived            = protocol.ErrNoDataReceived
	ErrInvalidUTF8               = protocol.ErrInvalidUTF8
	ErrChangedNonce              = protocol.ErrChangedNonce
	ErrIncorrectServerValidation = protocol.ErrIncorrectServerValidation
)

// MalformedPacketError, InvalidJSONError, and AuthError are re-exported
// from the protocol layer: the handshake fails fast on any of these and
// leaves the Connection unusable.
type (
	MalformedPacketError = protocol.MalformedPacketError
	InvalidJSONError     = protocol.InvalidJSONError
	AuthError            = protocol.AuthError
)

// QueryErrorKind classifies a server-reported query failure.
type QueryErrorKind int

const (
	QueryClientError QueryErrorKind = iota + 1
	QueryCompileError
	QueryRuntimeError
)

func (k QueryErrorKind) String() string {
	switch k {
	case QueryClientError:
		return "ClientError"
	case QueryCompileError:
		return "CompileError"
	case QueryRuntimeError:
		return "RuntimeError"
	default:
		return "UnknownQueryError"
	}
}

// QueryError reports a server-side ClientError, CompileError, or
// RuntimeError reply. Per the propagation policy, the Connection remains
// usable after one of these — only transport failures invalidate it.
type QueryError struct {
	Kind  QueryErrorKind
	Token uint64
	Reply json.RawMessage
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("goreql: query %s (token %d): %s", e.Kind, e.Token, string(e.Reply))
}

// ConnectionError wraps a transport-level failure (I/O, framing) that
// leaves the Connection unusable; callers should Close it and reconnect.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("goreql: connection failure: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }
