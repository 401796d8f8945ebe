package tokenpriv

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidHandle         = errors.New("invalid handle")
	ErrShortBuffer           = errors.New("buffer too short for declared contents")
	ErrProbeExhausted        = errors.New("buffer size probing did not converge")
	ErrInvalidLabel          = errors.New("mandatory label points outside of its buffer")
	ErrPrivilegeNotAvailable = errors.New("privilege is not available to this token")
	ErrProcessNotFound       = errors.New("process not found")
	ErrAmbiguousProcess      = errors.New("more than one process matches")
	ErrUnknownIntegrityLevel = errors.New("unknown integrity level")
	ErrUnknownTokenType      = errors.New("unknown token type")
	ErrNoActiveSession       = errors.New("no active session found")
)

// PrivilegeError reports a privilege that could not be moved to the requested state.
type PrivilegeError struct {
	Op   string
	Name string
	ID   PrivilegeID
	Err  error
}

func (e *PrivilegeError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ID.String()
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, name, e.Err)
}

func (e *PrivilegeError) Unwrap() error {
	return e.Err
}

// SIDError is returned when a string SID cannot be converted to its binary form.
type SIDError struct {
	SID string
	Err error
}

func (e *SIDError) Error() string {
	return fmt.Sprintf("failed to resolve SID %q: %v", e.SID, e.Err)
}

func (e *SIDError) Unwrap() error {
	return e.Err
}
