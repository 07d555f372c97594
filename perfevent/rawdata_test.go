package perfevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawDataGetNeverPanics(t *testing.T) {
	d := rawDataOf([]byte("hello world"))

	assert.Equal(t, "hello", string(d.Get(0, 5).Bytes()))
	assert.Equal(t, 0, d.Get(5, 2).Len(), "inverted bounds yield empty")
	assert.Equal(t, 0, d.Get(100, 200).Len(), "out-of-range lo yields empty")
	assert.Equal(t, "world", string(d.Get(6, 1000).Bytes()), "hi is clamped to len")
	assert.Equal(t, "hello world", string(d.Get(-5, 1000).Bytes()), "lo is clamped to 0")
}

func TestEmptyRawData(t *testing.T) {
	assert.Equal(t, 0, emptyRawData.Len())
}
