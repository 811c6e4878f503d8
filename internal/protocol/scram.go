package protocol

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Sanitise escapes a SCRAM username per RFC 5802 §5.1: replace '=' with
// "=3D", then ',' with "=2C", in that order, applied exactly once.
func Sanitise(user string) string {
	user = strings.ReplaceAll(user, "=", "=3D")
	user = strings.ReplaceAll(user, ",", "=2C")
	return user
}

// NewNonce returns 16 random bytes, standard-base64 encoded with padding.
func NewNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("protocol: generate nonce: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ClientFirst is the JSON body of the SCRAM stage A packet.
type ClientFirst struct {
	ProtocolVersion      int    `json:"protocol_version"`
	AuthenticationMethod string `json:"authentication_method"`
	Authentication       string `json:"authentication"`
}

// BuildClientFirst constructs the stage A packet body and returns the bare
// client-first message retained for the auth_message computation in
// stage B.
func BuildClientFirst(user, nonce string) (packet ClientFirst, bare string) {
	bare = "n=" + Sanitise(user) + ",r=" + nonce
	return ClientFirst{
		ProtocolVersion:      0,
		AuthenticationMethod: "SCRAM-SHA-256",
		Authentication:       "n,," + bare,
	}, bare
}

// ParseFields splits a SCRAM message of comma-separated key=value pairs,
// splitting each entry at its first '=' only. Entries with no '=' are
// silently dropped.
func ParseFields(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		idx := strings.IndexByte(part, '=')
		if idx < 0 {
			continue
		}
		out[part[:idx]] = part[idx+1:]
	}
	return out
}

// ClientProof holds the outputs of the stage B SCRAM derivation.
type ClientProof struct {
	// ClientFinal is the body of the stage B reply's "authentication" field.
	ClientFinal string
	// ServerSignature is retained to verify the stage C reply.
	ServerSignature []byte
}

// ComputeClientProof implements the SCRAM-SHA-256 derivation of RFC 5802
// §3: given the bare client-first message, the server-first message, the
// client's own nonce, and the password, it derives the client's final
// message and the server signature that stage C must match.
func ComputeClientProof(bare, serverFirst, clientNonce string, pass []byte) (ClientProof, error) {
	fields := ParseFields(serverFirst)

	r, ok := fields["r"]
	if !ok {
		return ClientProof{}, &MalformedPacketError{Stage: "scram-b", Value: serverFirst}
	}
	if !strings.HasPrefix(r, clientNonce) {
		return ClientProof{}, ErrChangedNonce
	}
	saltB64, ok := fields["s"]
	if !ok {
		return ClientProof{}, &MalformedPacketError{Stage: "scram-b", Value: serverFirst}
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return ClientProof{}, fmt.Errorf("protocol: decode salt: %w", err)
	}
	iterStr, ok := fields["i"]
	if !ok {
		return ClientProof{}, &MalformedPacketError{Stage: "scram-b", Value: serverFirst}
	}
	iterations, err := strconv.ParseUint(iterStr, 10, 32)
	if err != nil {
		return ClientProof{}, fmt.Errorf("protocol: parse iteration count: %w", err)
	}

	saltedPassword := pbkdf2.Key(pass, salt, int(iterations), 32, sha256.New)
	defer zero(saltedPassword)
	clientKey := hmacSum(saltedPassword, "Client Key")
	defer zero(clientKey)
	storedKey := sha256.Sum256(clientKey)
	defer zero(storedKey[:])

	clientFinalWithoutProof := "c=biws,r=" + r
	authMessage := bare + "," + serverFirst + "," + clientFinalWithoutProof

	clientSignature := hmacSum(storedKey[:], authMessage)
	defer zero(clientSignature)
	clientProof := xorBytes(clientKey, clientSignature)
	clientProofB64 := base64.StdEncoding.EncodeToString(clientProof)
	zero(clientProof)

	serverKey := hmacSum(saltedPassword, "Server Key")
	defer zero(serverKey)
	serverSignature := hmacSum(serverKey, authMessage)

	return ClientProof{
		ClientFinal:     clientFinalWithoutProof + ",p=" + clientProofB64,
		ServerSignature: serverSignature,
	}, nil
}

// VerifyStageC validates the final SCRAM reply against expected, the
// server_signature retained from stage B, using a constant-time compare.
func VerifyStageC(raw []byte, expected []byte) error {
	authStr, err := ExtractAuthentication("scram-c", raw)
	if err != nil {
		return err
	}
	vB64, ok := ParseFields(authStr)["v"]
	if !ok {
		return &MalformedPacketError{Stage: "scram-c", Value: authStr}
	}
	got, err := base64.StdEncoding.DecodeString(vB64)
	if err != nil {
		return fmt.Errorf("protocol: decode server signature: %w", err)
	}
	if len(got) != len(expected) || subtle.ConstantTimeCompare(got, expected) != 1 {
		return ErrIncorrectServerValidation
	}
	return nil
}

func hmacSum(key []byte, msg string) []byte {
	m := hmac.New(sha256.New, key)
	m.Write([]byte(msg))
	return m.Sum(nil)
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
