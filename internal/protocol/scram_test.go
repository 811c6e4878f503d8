package protocol

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSanitise matches RFC 5802 §5.1: '=' becomes "=3D" first, then ','
// becomes "=2C" — applying the replacement in the other order would double
// escape the "=2C" produced by the first pass (into "=3D2C").
func TestSanitise(t *testing.T) {
	assert.Equal(t, "p=3Dencil", Sanitise("p=encil"))
	assert.Equal(t, "a=2Cb", Sanitise("a,b"))
	assert.Equal(t, "a=3Db=2Cc", Sanitise("a=b,c"))
}

func TestBiwsIsBase64OfNComma(t *testing.T) {
	decoded, err := base64.StdEncoding.DecodeString("biws")
	assert.NoError(t, err)
	assert.Equal(t, "n,,", string(decoded))
}

func TestParseFields(t *testing.T) {
	got := ParseFields("r=abc,s=def==,i=4096,nokeyvalue,x=a=b")
	assert.Equal(t, "abc", got["r"])
	assert.Equal(t, "def==", got["s"])
	assert.Equal(t, "4096", got["i"])
	assert.Equal(t, "a=b", got["x"])
	_, ok := got["nokeyvalue"]
	assert.False(t, ok)
}

func TestBuildClientFirst(t *testing.T) {
	packet, bare := BuildClientFirst("user", "rOprNGfwEbeRWgbNEkqO")
	assert.Equal(t, 0, packet.ProtocolVersion)
	assert.Equal(t, "SCRAM-SHA-256", packet.AuthenticationMethod)
	assert.Equal(t, "n,,n=user,r=rOprNGfwEbeRWgbNEkqO", packet.Authentication)
	assert.Equal(t, "n=user,r=rOprNGfwEbeRWgbNEkqO", bare)
}

// TestComputeClientProofGoldenVector matches spec §8 scenario 3: the RFC
// 5802 test vector for user="user", pass="pencil".
func TestComputeClientProofGoldenVector(t *testing.T) {
	bare := "n=user,r=rOprNGfwEbeRWgbNEkqO"
	serverFirst := "r=rOprNGfwEbeRWgbNEkqO%hvYDpWUa2RaTCAfuxFIlj)hNlF$k0,s=W22ZaJ0SNY7soEsUEjb6gQ==,i=4096"

	proof, err := ComputeClientProof(bare, serverFirst, "rOprNGfwEbeRWgbNEkqO", []byte("pencil"))
	assert.NoError(t, err)

	wantClientFinal := "c=biws,r=rOprNGfwEbeRWgbNEkqO%hvYDpWUa2RaTCAfuxFIlj)hNlF$k0,p=dHzbZapWIk4jUhN+Ute9ytag9zjfMHgsqmmiz7AndVQ="
	assert.Equal(t, wantClientFinal, proof.ClientFinal)

	wantServerSig, err := base64.StdEncoding.DecodeString("6rriTRBi23WpRR/wtup+mMhUZUn/dB5nLTJRsjl95G4=")
	assert.NoError(t, err)
	assert.Equal(t, wantServerSig, proof.ServerSignature)
}

// TestChangedNonce matches spec §8 scenario 5: a server nonce that does not
// extend the client nonce fails fast.
func TestChangedNonce(t *testing.T) {
	_, err := ComputeClientProof("n=user,r=clientnonce", "r=somethingelse,s=AAAA,i=1", "clientnonce", []byte("x"))
	assert.ErrorIs(t, err, ErrChangedNonce)
}

// TestMissingNonceFieldIsMalformed matches the original's resolution of a
// server-first message with no "r" field at all: that's a structurally
// wrong packet, not a changed nonce.
func TestMissingNonceFieldIsMalformed(t *testing.T) {
	_, err := ComputeClientProof("n=user,r=clientnonce", "s=AAAA,i=1", "clientnonce", []byte("x"))
	var malformed *MalformedPacketError
	assert.ErrorAs(t, err, &malformed)
	assert.NotErrorIs(t, err, ErrChangedNonce)
}

func TestVerifyStageCSuccess(t *testing.T) {
	serverSig, err := base64.StdEncoding.DecodeString("6rriTRBi23WpRR/wtup+mMhUZUn/dB5nLTJRsjl95G4=")
	assert.NoError(t, err)

	raw := []byte(`{"success":true,"authentication":"v=6rriTRBi23WpRR/wtup+mMhUZUn/dB5nLTJRsjl95G4="}`)
	assert.NoError(t, VerifyStageC(raw, serverSig))
}

func TestVerifyStageCMismatch(t *testing.T) {
	raw := []byte(`{"success":true,"authentication":"v=AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="}`)
	err := VerifyStageC(raw, []byte("a wrong 32-byte server signature"))
	assert.ErrorIs(t, err, ErrIncorrectServerValidation)
}

func TestExtractAuthenticationAuthError(t *testing.T) {
	raw := []byte(`{"success":false,"error":"wrong password","error_code":12}`)
	_, err := ExtractAuthentication("scram-b", raw)
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, uint64(12), authErr.Code)
	assert.Equal(t, "wrong password", authErr.Message)
}

func TestExtractAuthenticationMalformed(t *testing.T) {
	raw := []byte(`{"success":true}`)
	_, err := ExtractAuthentication("scram-b", raw)
	var malformed *MalformedPacketError
	assert.ErrorAs(t, err, &malformed)
}
