package tokenpriv

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sys/windows"
)

// Privileges returns the privileges attached to the token. When the query
// fails the set is empty and the error says why; callers that only want a
// best effort listing can ignore it.
func (t *Token) Privileges() (PrivilegeSet, error) {
	buf, err := t.tokenInformation(windows.TokenPrivileges)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to query token privileges: %v", err))
		return PrivilegeSet{}, errors.Wrap(err, "GetTokenInformation(TokenPrivileges)")
	}
	return DecodePrivilegeSet(buf)
}

// FindPrivileges returns the privileges whose name contains substr, ignoring case.
func (t *Token) FindPrivileges(substr string) (PrivilegeSet, error) {
	set, err := t.Privileges()
	if err != nil {
		return set, err
	}
	return set.Filter(substr, LookupPrivilegeName), nil
}

func (t *Token) EnablePrivilege(id PrivilegeID) error {
	return t.setPrivilege("enable", id, PrivilegeEnabled)
}

func (t *Token) DisablePrivilege(id PrivilegeID) error {
	return t.setPrivilege("disable", id, 0)
}

// RemovePrivilege deletes the privilege from the token. It cannot be added back.
func (t *Token) RemovePrivilege(id PrivilegeID) error {
	return t.setPrivilege("remove", id, PrivilegeRemoved)
}

func (t *Token) setPrivilege(op string, id PrivilegeID, attrs PrivilegeAttributes) error {
	if err := t.valid(); err != nil {
		return &PrivilegeError{Op: op, ID: id, Err: err}
	}

	tp := windows.Tokenprivileges{
		PrivilegeCount: 1,
		Privileges: [1]windows.LUIDAndAttributes{
			{Luid: id.luid(), Attributes: uint32(attrs)},
		},
	}
	err := adjustTokenPrivileges(t.token, &tp)
	name := resolvePrivilegeName(id)
	if err != nil {
		perr := &PrivilegeError{Op: op, Name: name, ID: id, Err: err}
		logger.Error(perr.Error())
		return perr
	}
	logger.Debug(fmt.Sprintf("%s %s: ok", op, name))
	return nil
}

// EnablePrivileges enables every named privilege (names are matched ignoring
// case) and reports per name whether it ended up enabled. A name the token does
// not carry at all fails with ErrPrivilegeNotAvailable. Every name is tried;
// the returned error combines all failures and is nil only if all succeeded.
func (t *Token) EnablePrivileges(names ...string) (map[string]bool, error) {
	results := make(map[string]bool, len(names))
	if len(names) == 0 {
		return results, nil
	}
	failures := make(map[string]error, len(names))
	for _, name := range names {
		results[name] = false
	}

	available, err := t.Privileges()
	if err != nil {
		logger.Error(fmt.Sprintf("privilege inventory unavailable, treating it as empty: %v", err))
	}

	for _, p := range available {
		pname, err := LookupPrivilegeName(p.ID)
		if err != nil {
			continue
		}
		for _, name := range names {
			if !strings.EqualFold(pname, name) {
				continue
			}
			if p.Attributes.Enabled() {
				results[name] = true
				continue
			}
			if err := t.EnablePrivilege(p.ID); err != nil {
				failures[name] = err
				continue
			}
			results[name] = true
		}
	}

	var errs error
	reported := make(map[string]bool, len(names))
	for _, name := range names {
		if results[name] || reported[name] {
			continue
		}
		reported[name] = true
		ferr, ok := failures[name]
		if !ok {
			ferr = &PrivilegeError{Op: "enable", Name: name, Err: ErrPrivilegeNotAvailable}
			logger.Error(ferr.Error())
		}
		errs = multierr.Append(errs, ferr)
	}
	return results, errs
}

// SetAllPrivileges enables or disables every privilege on the token that is
// not already in that state. Removed privileges are skipped.
func (t *Token) SetAllPrivileges(enable bool) error {
	set, err := t.Privileges()
	if err != nil {
		return err
	}

	var errs error
	for _, p := range set {
		if p.Attributes.Removed() || p.Attributes.Enabled() == enable {
			continue
		}
		if enable {
			errs = multierr.Append(errs, t.EnablePrivilege(p.ID))
		} else {
			errs = multierr.Append(errs, t.DisablePrivilege(p.ID))
		}
	}
	return errs
}
