package tokenpriv

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// IntegrityLevel reads the token's mandatory label. A label SID that is not a
// well-known level yields LevelUnknown without an error.
func (t *Token) IntegrityLevel() (IntegrityLevel, error) {
	buf, err := t.tokenInformation(windows.TokenIntegrityLevel)
	if err != nil {
		return LevelUnknown, errors.Wrap(err, "GetTokenInformation(TokenIntegrityLevel)")
	}

	off, _, err := decodeMandatoryLabel(buf, uintptr(unsafe.Pointer(&buf[0])))
	if err != nil {
		return LevelUnknown, err
	}
	sid := (*windows.SID)(unsafe.Pointer(&buf[off]))
	s := sid.String()
	runtime.KeepAlive(buf)

	level := LevelFromSID(s)
	if level == LevelUnknown {
		logger.Debug(fmt.Sprintf("unrecognized integrity SID %s", s))
	}
	return level, nil
}

// SetIntegrityLevel sets the token's mandatory label to the level SID given in
// string form, e.g. S-1-16-4096. Raising the level needs SeRelabelPrivilege;
// lowering it only needs TOKEN_ADJUST_DEFAULT.
func (t *Token) SetIntegrityLevel(levelSID string) error {
	if err := t.valid(); err != nil {
		return err
	}

	name := MandatoryLevelName(levelSID)
	p, err := windows.UTF16PtrFromString(levelSID)
	if err != nil {
		return &SIDError{SID: levelSID, Err: err}
	}
	var sid *windows.SID
	if err := windows.ConvertStringSidToSid(p, &sid); err != nil {
		serr := &SIDError{SID: levelSID, Err: err}
		logger.Error(serr.Error())
		return serr
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(sid)))

	tml := windows.Tokenmandatorylabel{
		Label: windows.SIDAndAttributes{
			Sid:        sid,
			Attributes: windows.SE_GROUP_INTEGRITY,
		},
	}
	// The SID trails the label, so its length counts toward the submitted size.
	size := uint32(unsafe.Sizeof(tml)) + windows.GetLengthSid(sid)

	logger.Debug(fmt.Sprintf("trying to set %s", name))
	if err := windows.SetTokenInformation(t.token, windows.TokenIntegrityLevel, (*byte)(unsafe.Pointer(&tml)), size); err != nil {
		err = errors.Wrapf(err, "failed to set integrity level %s", name)
		logger.Error(err.Error())
		return err
	}
	logger.Info(fmt.Sprintf("%s is set successfully", name))
	return nil
}

// SetIntegrity is SetIntegrityLevel for a well-known level.
func (t *Token) SetIntegrity(level IntegrityLevel) error {
	if level.SID() == "" {
		return errors.Wrapf(ErrUnknownIntegrityLevel, "%d", int(level))
	}
	return t.SetIntegrityLevel(level.SID())
}
