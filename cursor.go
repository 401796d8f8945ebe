package tokenpriv

import (
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// cursor walks a buffer returned by the OS. Every read is length checked
// against the remaining bytes; nothing is read past the end.
type cursor struct {
	buf []byte
	off int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) need(n int, what string) error {
	if n < 0 || c.remaining() < n {
		return errors.Wrapf(ErrShortBuffer, "reading %s at offset %d: need %d bytes, have %d", what, c.off, n, c.remaining())
	}
	return nil
}

func (c *cursor) skip(n int) error {
	if err := c.need(n, "padding"); err != nil {
		return err
	}
	c.off += n
	return nil
}

func (c *cursor) uint32() (uint32, error) {
	if err := c.need(4, "uint32"); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.off:])
	c.off += 4
	return v, nil
}

func (c *cursor) int32() (int32, error) {
	v, err := c.uint32()
	return int32(v), err
}

// uintptr reads a native pointer-sized little-endian value.
func (c *cursor) uintptr() (uintptr, error) {
	if err := c.need(ptrSize, "pointer"); err != nil {
		return 0, err
	}
	var v uintptr
	if ptrSize == 8 {
		v = uintptr(binary.LittleEndian.Uint64(c.buf[c.off:]))
	} else {
		v = uintptr(binary.LittleEndian.Uint32(c.buf[c.off:]))
	}
	c.off += ptrSize
	return v, nil
}
