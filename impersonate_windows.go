package tokenpriv

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sys/windows"
)

// smss.exe runs as SYSTEM and is not a protected process.
const sessionManagerImage = "smss.exe"

// ImpersonateSystem makes the calling OS thread act as SYSTEM by borrowing the
// session manager's token. The impersonation outlives the call and stays on the
// thread until RevertToSelf. Pin the goroutine with runtime.LockOSThread first,
// otherwise the runtime may move it off the impersonating thread.
func ImpersonateSystem() error {
	logger.Debug(fmt.Sprintf("trying to impersonate as %s", sessionManagerImage))
	return impersonateImage(sessionManagerImage)
}

func impersonateImage(image string) error {
	pid, err := findProcessID(image)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get process id of %s: %v", image, err))
		return err
	}
	return ImpersonateProcess(pid)
}

// findProcessID resolves an image name to exactly one running process.
func findProcessID(image string) (uint32, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, errors.Wrap(err, "listing processes")
	}

	var found []int32
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(name, image) {
			found = append(found, p.Pid)
		}
	}

	switch len(found) {
	case 0:
		return 0, errors.Wrap(ErrProcessNotFound, image)
	case 1:
		if found[0] <= 0 {
			return 0, errors.Wrap(ErrProcessNotFound, image)
		}
		return uint32(found[0]), nil
	default:
		return 0, errors.Wrapf(ErrAmbiguousProcess, "%s: pids %v", image, found)
	}
}

// ImpersonateProcess duplicates the token of pid and impersonates it on the
// calling OS thread. Every handle opened on the way is closed before returning.
func ImpersonateProcess(pid uint32) error {
	hProcess, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get handle to process %d: %v", pid, err))
		return errors.Wrapf(err, "OpenProcess(%d)", pid)
	}

	var hToken windows.Token
	err = windows.OpenProcessToken(hProcess, windows.TOKEN_DUPLICATE, &hToken)
	windows.CloseHandle(hProcess)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to get handle to process %d token: %v", pid, err))
		return errors.Wrapf(err, "OpenProcessToken(%d)", pid)
	}

	var hDupToken windows.Token
	err = windows.DuplicateTokenEx(hToken, windows.MAXIMUM_ALLOWED, nil, windows.SecurityImpersonation, windows.TokenPrimary, &hDupToken)
	hToken.Close()
	if err != nil {
		logger.Error(fmt.Sprintf("failed to duplicate process %d token: %v", pid, err))
		return errors.Wrap(err, "error while DuplicateTokenEx")
	}
	defer hDupToken.Close()

	if err := impersonateLoggedOnUser(hDupToken); err != nil {
		logger.Error(fmt.Sprintf("failed to impersonate logon user: %v", err))
		return errors.Wrap(err, "ImpersonateLoggedOnUser")
	}

	logger.Info(fmt.Sprintf("impersonating process %d", pid))
	return nil
}

// RevertToSelf ends impersonation on the calling OS thread.
func RevertToSelf() error {
	return errors.Wrap(windows.RevertToSelf(), "RevertToSelf")
}
