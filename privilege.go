package tokenpriv

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PrivilegeID is a locally unique identifier naming a privilege for the
// current boot session. Values are not stable across reboots or machines.
type PrivilegeID struct {
	LowPart  uint32
	HighPart int32
}

func (id PrivilegeID) Uint64() uint64 {
	return uint64(uint32(id.HighPart))<<32 | uint64(id.LowPart)
}

func (id PrivilegeID) String() string {
	return fmt.Sprintf("0x%x", id.Uint64())
}

// PrivilegeAttributes is the attribute bitmask of one privilege entry.
type PrivilegeAttributes uint32

const (
	PrivilegeEnabledByDefault PrivilegeAttributes = 0x00000001
	PrivilegeEnabled          PrivilegeAttributes = 0x00000002
	PrivilegeRemoved          PrivilegeAttributes = 0x00000004
	PrivilegeUsedForAccess    PrivilegeAttributes = 0x80000000
)

func (a PrivilegeAttributes) Enabled() bool          { return a&PrivilegeEnabled != 0 }
func (a PrivilegeAttributes) EnabledByDefault() bool { return a&PrivilegeEnabledByDefault != 0 }
func (a PrivilegeAttributes) Removed() bool          { return a&PrivilegeRemoved != 0 }

func (a PrivilegeAttributes) String() string {
	switch {
	case a.Removed():
		return "Removed"
	case a.Enabled() && a.EnabledByDefault():
		return "Enabled (Default)"
	case a.Enabled():
		return "Enabled"
	case a.EnabledByDefault():
		return "Disabled (Default Enabled)"
	default:
		return "Disabled"
	}
}

// Privilege is one (identifier, attributes) entry of a token.
type Privilege struct {
	ID         PrivilegeID
	Attributes PrivilegeAttributes
}

// PrivilegeSet holds privileges in the order the OS reported them.
type PrivilegeSet []Privilege

func (s PrivilegeSet) Lookup(id PrivilegeID) (Privilege, bool) {
	for _, p := range s {
		if p.ID == id {
			return p, true
		}
	}
	return Privilege{}, false
}

// Filter keeps the entries whose name, as returned by nameOf, contains substr
// ignoring case. Entries nameOf cannot resolve are dropped.
func (s PrivilegeSet) Filter(substr string, nameOf func(PrivilegeID) (string, error)) PrivilegeSet {
	needle := strings.ToLower(substr)
	out := PrivilegeSet{}
	for _, p := range s {
		name, err := nameOf(p.ID)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, p)
		}
	}
	return out
}

const (
	privilegeCountSize  = 4
	privilegeRecordSize = 12
)

// DecodePrivilegeSet parses a TOKEN_PRIVILEGES buffer: a little-endian entry
// count followed by that many {LUID, attributes} records. Exactly count records
// are decoded; bytes after the last record are ignored.
func DecodePrivilegeSet(buf []byte) (PrivilegeSet, error) {
	c := newCursor(buf)
	count, err := c.uint32()
	if err != nil {
		return PrivilegeSet{}, errors.Wrap(err, "privilege count")
	}
	if count > uint32(c.remaining()/privilegeRecordSize) {
		return PrivilegeSet{}, errors.Wrapf(ErrShortBuffer, "%d privilege records declared, %d bytes left", count, c.remaining())
	}

	set := make(PrivilegeSet, 0, count)
	for i := uint32(0); i < count; i++ {
		var p Privilege
		if p.ID.LowPart, err = c.uint32(); err != nil {
			return PrivilegeSet{}, err
		}
		if p.ID.HighPart, err = c.int32(); err != nil {
			return PrivilegeSet{}, err
		}
		attrs, err := c.uint32()
		if err != nil {
			return PrivilegeSet{}, err
		}
		p.Attributes = PrivilegeAttributes(attrs)
		set = append(set, p)
	}
	return set, nil
}
