package tokenpriv

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// ParentProcessID returns the id of the process that created process, as
// recorded in its basic information block. The parent may have exited since
// and its id may have been reused. A zero handle or a failed query yields 0.
func ParentProcessID(process windows.Handle) (uint32, error) {
	// INVALID_HANDLE_VALUE doubles as the current process pseudo handle.
	if process == 0 {
		return 0, ErrInvalidHandle
	}

	buf := make([]byte, processBasicInformationSize)
	var n uint32
	err := windows.NtQueryInformationProcess(process, windows.ProcessBasicInformation, unsafe.Pointer(&buf[0]), uint32(len(buf)), &n)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get process information: %v", err))
		return 0, errors.Wrap(err, "NtQueryInformationProcess(ProcessBasicInformation)")
	}
	return decodeParentProcessID(buf)
}

// ParentProcessIDOf opens pid with limited query rights and returns its parent id.
func ParentProcessIDOf(pid uint32) (uint32, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return 0, errors.Wrapf(err, "OpenProcess(%d)", pid)
	}
	defer windows.CloseHandle(h)
	return ParentProcessID(h)
}
