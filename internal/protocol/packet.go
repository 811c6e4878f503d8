package protocol

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"
)

// WritePacket serialises v to JSON and writes it followed by a single NUL
// terminator, the framing used throughout the handshake sub-transport.
func WritePacket(w io.Writer, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("protocol: encode packet: %w", err)
	}
	body = append(body, 0x00)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("protocol: write packet: %w", err)
	}
	return nil
}

// ReadPacket reads from r up to and including a NUL terminator and returns
// the bytes with the terminator stripped. An immediate EOF with nothing
// read at all reports ErrNoDataReceived, per the handshake's "empty read
// before NUL is connection-closed" rule.
func ReadPacket(r *bufio.Reader) ([]byte, error) {
	data, err := r.ReadBytes(0x00)
	if err != nil {
		if len(data) == 0 {
			return nil, ErrNoDataReceived
		}
		return nil, fmt.Errorf("protocol: read packet: %w", err)
	}
	body := data[:len(data)-1]
	if !utf8.Valid(body) {
		return nil, ErrInvalidUTF8
	}
	return body, nil
}

type stage0Reply struct {
	Success            bool `json:"success"`
	MinProtocolVersion *int `json:"min_protocol_version"`
}

// ValidateStage0 checks the server's response to the magic bytes: it must
// report success and a min_protocol_version this client satisfies.
func ValidateStage0(raw []byte) error {
	var r stage0Reply
	if err := json.Unmarshal(raw, &r); err != nil {
		return &InvalidJSONError{Text: string(raw), Err: err}
	}
	if !r.Success || r.MinProtocolVersion == nil || *r.MinProtocolVersion > 0 {
		return &MalformedPacketError{Stage: "magic", Value: string(raw)}
	}
	return nil
}

type handshakeReply struct {
	Success        bool     `json:"success"`
	Authentication *string  `json:"authentication"`
	Error          *string  `json:"error"`
	ErrorCode      *float64 `json:"error_code"`
}

// ExtractAuthentication applies the common stage B/C response validation
// rule and returns the packet's authentication field.
func ExtractAuthentication(stage string, raw []byte) (string, error) {
	var r handshakeReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return "", &InvalidJSONError{Text: string(raw), Err: err}
	}
	if r.Success {
		if r.Authentication == nil {
			return "", &MalformedPacketError{Stage: stage, Value: string(raw)}
		}
		return *r.Authentication, nil
	}
	if r.Error != nil && r.ErrorCode != nil {
		return "", &AuthError{Code: uint64(*r.ErrorCode), Message: *r.Error}
	}
	return "", &MalformedPacketError{Stage: stage, Value: string(raw)}
}
