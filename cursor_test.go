package tokenpriv

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putPtr(b []byte, v uintptr) []byte {
	if ptrSize == 8 {
		return binary.LittleEndian.AppendUint64(b, uint64(v))
	}
	return binary.LittleEndian.AppendUint32(b, uint32(v))
}

func TestCursor_Reads(t *testing.T) {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, 7)
	buf = binary.LittleEndian.AppendUint32(buf, 0xffffffff)
	buf = putPtr(buf, 0x1234)

	c := newCursor(buf)
	u, err := c.uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), u)

	i, err := c.int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i)

	p, err := c.uintptr()
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x1234), p)
	assert.Equal(t, 0, c.remaining())
}

func TestCursor_ShortBuffer(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})
	_, err := c.uint32()
	assert.ErrorIs(t, err, ErrShortBuffer)
	assert.Equal(t, 3, c.remaining(), "a failed read must not advance")

	assert.ErrorIs(t, c.skip(4), ErrShortBuffer)
	assert.ErrorIs(t, c.need(-1, "negative"), ErrShortBuffer)
	require.NoError(t, c.skip(3))

	_, err = c.uintptr()
	assert.ErrorIs(t, err, ErrShortBuffer)
}
