package tokenpriv

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// These are called directly rather than through x/sys so the last-error slot
// is visible after a call that reports success.
var (
	advapi32                    = windows.NewLazySystemDLL("advapi32.dll")
	procAdjustTokenPrivileges   = advapi32.NewProc("AdjustTokenPrivileges")
	procImpersonateLoggedOnUser = advapi32.NewProc("ImpersonateLoggedOnUser")
	procLookupPrivilegeNameW    = advapi32.NewProc("LookupPrivilegeNameW")
)

// adjustTokenPrivileges applies tp without asking for the previous state.
// A nil return requires both a TRUE result and ERROR_SUCCESS in the last-error
// slot: the call succeeds with ERROR_NOT_ALL_ASSIGNED when the token lacks the
// privilege.
func adjustTokenPrivileges(token windows.Token, tp *windows.Tokenprivileges) error {
	r1, _, e1 := procAdjustTokenPrivileges.Call(
		uintptr(token),
		0,
		uintptr(unsafe.Pointer(tp)),
		0,
		0,
		0,
	)
	errno, _ := e1.(syscall.Errno)
	if r1 == 0 {
		if errno == windows.ERROR_SUCCESS {
			return windows.ERROR_INVALID_PARAMETER
		}
		return errno
	}
	if errno != windows.ERROR_SUCCESS {
		return errno
	}
	return nil
}

func impersonateLoggedOnUser(token windows.Token) error {
	r1, _, e1 := procImpersonateLoggedOnUser.Call(uintptr(token))
	if r1 == 0 {
		return e1
	}
	return nil
}

func lookupPrivilegeName(luid *windows.LUID, name *uint16, size *uint32) error {
	r1, _, e1 := procLookupPrivilegeNameW.Call(
		0,
		uintptr(unsafe.Pointer(luid)),
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(size)),
	)
	if r1 == 0 {
		return e1
	}
	return nil
}
