package tokenpriv

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

func (id PrivilegeID) luid() windows.LUID {
	return windows.LUID{LowPart: id.LowPart, HighPart: id.HighPart}
}

// LookupPrivilegeID resolves a privilege name such as SeDebugPrivilege on the local system.
func LookupPrivilegeID(name string) (PrivilegeID, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return PrivilegeID{}, errors.Wrapf(err, "privilege name %q", name)
	}
	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, p, &luid); err != nil {
		return PrivilegeID{}, errors.Wrapf(err, "LookupPrivilegeValue(%s)", name)
	}
	return PrivilegeID{LowPart: luid.LowPart, HighPart: luid.HighPart}, nil
}

// LookupPrivilegeName returns the programmatic name of id, e.g. SeShutdownPrivilege.
func LookupPrivilegeName(id PrivilegeID) (string, error) {
	luid := id.luid()
	name, err := probeBuffer(initialProbeSize, func(buf []uint16) (int, error) {
		size := uint32(len(buf))
		err := lookupPrivilegeName(&luid, &buf[0], &size)
		return int(size), err
	}, bufferTooSmall)
	if err != nil {
		return "", errors.Wrapf(err, "LookupPrivilegeName(%s)", id)
	}
	return windows.UTF16ToString(name), nil
}

var resolvePrivilegeName = privilegeName

func privilegeName(id PrivilegeID) string {
	name, err := LookupPrivilegeName(id)
	if err != nil {
		return id.String()
	}
	return name
}
