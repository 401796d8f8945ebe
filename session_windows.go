package tokenpriv

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

const (
	WTS_CURRENT_SERVER_HANDLE windows.Handle = 0
)

// OpenInteractiveToken returns the token of the user logged on to the active
// console or RDP session. WTSQueryUserToken needs SeTcbPrivilege, which in
// practice means running as SYSTEM, e.g. after ImpersonateSystem.
func OpenInteractiveToken(tokenType TokenType) (*Token, error) {
	sessionID, err := activeSessionID()
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("will be used sessionID: %d", sessionID))
	return OpenSessionToken(sessionID, tokenType)
}

func activeSessionID() (uint32, error) {
	var (
		sessions     *windows.WTS_SESSION_INFO
		sessionCount uint32
	)

	err := windows.WTSEnumerateSessions(WTS_CURRENT_SERVER_HANDLE, 0, 1, &sessions, &sessionCount)
	if err != nil {
		return 0, errors.Wrap(err, "error while enumerating sessions")
	}
	defer windows.WTSFreeMemory(uintptr(unsafe.Pointer(sessions)))

	if sessionID, ok := firstActiveSession(unsafe.Slice(sessions, sessionCount)); ok {
		return sessionID, nil
	}
	return 0, ErrNoActiveSession
}

// firstActiveSession skips session 0, which hosts services and never has a user.
func firstActiveSession(sessions []windows.WTS_SESSION_INFO) (uint32, bool) {
	for _, s := range sessions {
		if s.State == windows.WTSActive && s.SessionID != 0 {
			return s.SessionID, true
		}
	}
	return 0, false
}

// OpenSessionToken duplicates the user token of a terminal services session.
func OpenSessionToken(sessionID uint32, tokenType TokenType) (*Token, error) {
	switch tokenType {
	case TokenPrimary, TokenImpersonation, TokenLinked:
	default:
		return nil, ErrUnknownTokenType
	}

	var userToken windows.Token
	if err := windows.WTSQueryUserToken(sessionID, &userToken); err != nil {
		return nil, errors.Wrap(err, "error while WTSQueryUserToken")
	}
	defer userToken.Close()

	dt, err := duplicateAs(userToken, tokenType)
	if err != nil {
		return nil, err
	}
	return &Token{token: dt, typ: tokenType, owned: true}, nil
}
