package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWriteFrameGoldenBytes matches spec §8 scenario 6: token=7,
// payload=[1,"x"] produces the exact big-endian-token/little-endian-length
// byte sequence.
func TestWriteFrameGoldenBytes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, 7, []byte(`[1,"x"]`))
	assert.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07,
		0x07, 0x00, 0x00, 0x00,
		'[', '1', ',', '"', 'x', '"', ']',
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for _, tc := range []struct {
		token   uint64
		payload []byte
	}{
		{0, []byte(`[1]`)},
		{7, []byte(`[1,"x"]`)},
		{1<<63 - 1, []byte(`{"a":1}`)},
	} {
		buf.Reset()
		assert.NoError(t, WriteFrame(&buf, tc.token, tc.payload))
		gotToken, gotBody, err := ReadFrame(&buf)
		assert.NoError(t, err)
		assert.Equal(t, tc.token, gotToken)
		assert.Equal(t, tc.payload, gotBody)
	}
}

func TestReadFrameShortReadIsError(t *testing.T) {
	_, _, err := ReadFrame(bytes.NewReader([]byte{0x00, 0x00}))
	assert.Error(t, err)
}
