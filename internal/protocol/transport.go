package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// frameHeaderSize is the 8-byte token plus the 4-byte length prefix.
const frameHeaderSize = 8 + 4

// WriteFrame writes one framed query message: an 8-byte big-endian token,
// a 4-byte little-endian length, then the body bytes. The asymmetric
// endianness is mandated by the wire protocol.
func WriteFrame(w io.Writer, token uint64, body []byte) error {
	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint64(header[:8], token)
	binary.LittleEndian.PutUint32(header[8:], uint32(len(body)))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("protocol: write frame header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("protocol: write frame body: %w", err)
	}
	return nil
}

// ReadFrame reads one framed reply message in the shape WriteFrame
// produces.
func ReadFrame(r io.Reader) (token uint64, body []byte, err error) {
	header := make([]byte, frameHeaderSize)
	if _, err = io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("protocol: read frame header: %w", err)
	}
	token = binary.BigEndian.Uint64(header[:8])
	length := binary.LittleEndian.Uint32(header[8:])
	body = make([]byte, length)
	if _, err = io.ReadFull(r, body); err != nil {
		return 0, nil, fmt.Errorf("protocol: read frame body: %w", err)
	}
	return token, body, nil
}
