package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagicBytes(t *testing.T) {
	assert.Equal(t, []byte{0xc3, 0xbd, 0xc2, 0x34}, MagicBytes())
}
