package tokenpriv

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

type TokenType int

const (
	// TokenDirect is the process token itself; changes affect the process.
	TokenDirect TokenType = iota
	TokenPrimary
	TokenImpersonation
	TokenLinked
)

const directTokenAccess = windows.TOKEN_QUERY | windows.TOKEN_ADJUST_PRIVILEGES | windows.TOKEN_ADJUST_DEFAULT

// Token is a token handle plus the knowledge of whether this package must close it.
type Token struct {
	token windows.Token
	typ   TokenType
	owned bool
}

// FromHandle wraps a token handle the caller owns. Close on the result does
// nothing; the caller keeps disposing the handle.
func FromHandle(t windows.Token) *Token {
	return &Token{token: t, typ: TokenDirect}
}

// OpenProcessToken opens a process token using PID, pass 0 as PID for self token.
// TokenDirect returns the live token; the other types return a duplicate.
func OpenProcessToken(pid int, tokenType TokenType) (*Token, error) {
	switch tokenType {
	case TokenDirect, TokenPrimary, TokenImpersonation, TokenLinked:
	default:
		return nil, ErrUnknownTokenType
	}

	var (
		t          windows.Token
		procHandle windows.Handle
		err        error
	)

	if pid == 0 {
		procHandle = windows.CurrentProcess()
	} else {
		procHandle, err = windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
		if err != nil {
			return nil, errors.Wrapf(err, "OpenProcess(%d)", pid)
		}
		defer windows.CloseHandle(procHandle)
	}

	access := uint32(windows.TOKEN_DUPLICATE | windows.TOKEN_QUERY)
	if tokenType == TokenDirect {
		access = directTokenAccess
	}
	if err = windows.OpenProcessToken(procHandle, access, &t); err != nil {
		return nil, errors.Wrapf(err, "OpenProcessToken(%d)", pid)
	}

	if tokenType == TokenDirect {
		return &Token{token: t, typ: TokenDirect, owned: true}, nil
	}
	defer t.Close()

	dt, err := duplicateAs(t, tokenType)
	if err != nil {
		return nil, err
	}
	return &Token{token: dt, typ: tokenType, owned: true}, nil
}

// OpenThreadToken opens the impersonation token of the calling OS thread. It
// fails with ERROR_NO_TOKEN when the thread is not impersonating.
func OpenThreadToken(access uint32) (*Token, error) {
	var t windows.Token
	if err := windows.OpenThreadToken(windows.CurrentThread(), access, true, &t); err != nil {
		return nil, errors.Wrap(err, "OpenThreadToken")
	}
	return &Token{token: t, typ: TokenImpersonation, owned: true}, nil
}

// OpenParentProcessToken opens the token of the process that started this one,
// typically the shell the program runs in.
func OpenParentProcessToken(tokenType TokenType) (*Token, error) {
	ppid, err := ParentProcessID(windows.CurrentProcess())
	if err != nil {
		return nil, err
	}
	logger.Debug(fmt.Sprintf("parent process id: %d", ppid))
	return OpenProcessToken(int(ppid), tokenType)
}

func duplicateAs(t windows.Token, tokenType TokenType) (windows.Token, error) {
	var duplicatedToken windows.Token

	switch tokenType {
	case TokenPrimary:
		if err := windows.DuplicateTokenEx(t, windows.MAXIMUM_ALLOWED, nil, windows.SecurityDelegation, windows.TokenPrimary, &duplicatedToken); err != nil {
			return 0, errors.Wrap(err, "error while DuplicateTokenEx")
		}
	case TokenImpersonation:
		if err := windows.DuplicateTokenEx(t, windows.MAXIMUM_ALLOWED, nil, windows.SecurityImpersonation, windows.TokenImpersonation, &duplicatedToken); err != nil {
			return 0, errors.Wrap(err, "error while DuplicateTokenEx")
		}
	case TokenLinked:
		if err := windows.DuplicateTokenEx(t, windows.MAXIMUM_ALLOWED, nil, windows.SecurityDelegation, windows.TokenPrimary, &duplicatedToken); err != nil {
			return 0, errors.Wrap(err, "error while DuplicateTokenEx")
		}
		lt, err := duplicatedToken.GetLinkedToken()
		duplicatedToken.Close()
		if err != nil {
			return 0, errors.Wrap(err, "error while getting LinkedToken")
		}
		duplicatedToken = lt
	default:
		return 0, ErrUnknownTokenType
	}

	if windows.Handle(duplicatedToken) == windows.InvalidHandle {
		return 0, ErrInvalidHandle
	}
	return duplicatedToken, nil
}

func (t *Token) Handle() windows.Token {
	return t.token
}

func (t *Token) Type() TokenType {
	return t.typ
}

// Close releases handles opened by this package. It is safe to call twice.
func (t *Token) Close() error {
	if !t.owned || t.token == 0 {
		return nil
	}
	err := t.token.Close()
	t.token = 0
	return err
}

func (t *Token) valid() error {
	if t == nil || t.token == 0 || windows.Handle(t.token) == windows.InvalidHandle {
		return ErrInvalidHandle
	}
	return nil
}
