package tokenpriv

import "github.com/pkg/errors"

// A SID is {revision, sub-authority count, 6-byte authority} followed by
// count 4-byte sub-authorities.
const (
	sidHeaderSize       = 8
	sidSubAuthoritySize = 4
)

// decodeMandatoryLabel reads a TOKEN_MANDATORY_LABEL written at base and
// returns where its SID starts inside buf. The OS stores the SID behind the
// label in the same buffer; a pointer anywhere else is rejected.
func decodeMandatoryLabel(buf []byte, base uintptr) (sidOffset int, attrs uint32, err error) {
	c := newCursor(buf)
	ptr, err := c.uintptr()
	if err != nil {
		return 0, 0, errors.Wrap(err, "label SID pointer")
	}
	if attrs, err = c.uint32(); err != nil {
		return 0, 0, errors.Wrap(err, "label attributes")
	}

	// The SID follows the label record.
	if ptr < base+uintptr(c.off) || ptr-base >= uintptr(len(buf)) {
		return 0, 0, ErrInvalidLabel
	}
	sidOffset = int(ptr - base)

	sid := newCursor(buf[sidOffset:])
	if err := sid.need(sidHeaderSize, "SID header"); err != nil {
		return 0, 0, err
	}
	subAuthorities := int(buf[sidOffset+1])
	if err := sid.need(sidHeaderSize+subAuthorities*sidSubAuthoritySize, "SID sub-authorities"); err != nil {
		return 0, 0, err
	}
	return sidOffset, attrs, nil
}
