package perfevent

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegsGetPopcountIndex(t *testing.T) {
	// Mask captures registers 0, 2, and 5. Their words are packed in
	// ascending bit-position order: word 0 for register 0, word 1 for
	// register 2, word 2 for register 5.
	mask := uint64(1<<0 | 1<<2 | 1<<5)
	words := make([]byte, 3*8)
	binary.LittleEndian.PutUint64(words[0:], 0x1111111111111111)
	binary.LittleEndian.PutUint64(words[8:], 0x2222222222222222)
	binary.LittleEndian.PutUint64(words[16:], 0x3333333333333333)

	regs := NewRegs(mask, rawRegsOf(words, binary.LittleEndian))

	v, ok := regs.Get(0)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x1111111111111111), v)

	v, ok = regs.Get(2)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x2222222222222222), v)

	v, ok = regs.Get(5)
	assert.True(t, ok)
	assert.Equal(t, uint64(0x3333333333333333), v)

	_, ok = regs.Get(1)
	assert.False(t, ok)
	_, ok = regs.Get(63)
	assert.False(t, ok)
}

func TestRawRegsGetNeverPanics(t *testing.T) {
	raw := rawRegsOf([]byte{1, 2, 3}, binary.LittleEndian)
	assert.Equal(t, uint64(0), raw.Get(5))
	assert.Equal(t, uint64(0), raw.Get(-1))
	assert.Equal(t, 0, raw.Len())
}
