// Package protocol implements the wire mechanics of the ReQL-style client
// protocol: the magic handshake, NUL-terminated JSON packet framing, the
// SCRAM-SHA-256 key exchange, and the length-prefixed query transport. It
// has no notion of the query term tree or of a Connection's lifecycle;
// those live in the parent package.
package protocol

import "encoding/binary"

// Magic is the protocol's V1_0 handshake magic number.
const Magic uint32 = 0x34c2bdc3

// MagicBytes returns the four bytes a client writes immediately after
// establishing the TCP connection, little-endian encoded.
func MagicBytes() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, Magic)
	return b
}
