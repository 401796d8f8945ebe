package tokenpriv

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IntegrityLevel is a mandatory integrity tier. Levels are ordered: a larger
// value is a more trusted level. LevelUnknown is not a level.
type IntegrityLevel int

const (
	LevelUnknown IntegrityLevel = iota - 1
	LevelUntrusted
	LevelLow
	LevelMedium
	LevelMediumPlus
	LevelHigh
	LevelSystem
	LevelProtected
	LevelSecure
)

// Mandatory level SIDs
const (
	SID_UNTRUSTED_MANDATORY_LEVEL   = "S-1-16-0"
	SID_LOW_MANDATORY_LEVEL         = "S-1-16-4096"
	SID_MEDIUM_MANDATORY_LEVEL      = "S-1-16-8192"
	SID_MEDIUM_PLUS_MANDATORY_LEVEL = "S-1-16-8448"
	SID_HIGH_MANDATORY_LEVEL        = "S-1-16-12288"
	SID_SYSTEM_MANDATORY_LEVEL      = "S-1-16-16384"
	SID_PROTECTED_MANDATORY_LEVEL   = "S-1-16-20480"
	SID_SECURE_MANDATORY_LEVEL      = "S-1-16-28672"
)

var levelTable = [...]struct {
	sid  string
	name string
}{
	LevelUntrusted:  {SID_UNTRUSTED_MANDATORY_LEVEL, "UNTRUSTED_MANDATORY_LEVEL"},
	LevelLow:        {SID_LOW_MANDATORY_LEVEL, "LOW_MANDATORY_LEVEL"},
	LevelMedium:     {SID_MEDIUM_MANDATORY_LEVEL, "MEDIUM_MANDATORY_LEVEL"},
	LevelMediumPlus: {SID_MEDIUM_PLUS_MANDATORY_LEVEL, "MEDIUM_PLUS_MANDATORY_LEVEL"},
	LevelHigh:       {SID_HIGH_MANDATORY_LEVEL, "HIGH_MANDATORY_LEVEL"},
	LevelSystem:     {SID_SYSTEM_MANDATORY_LEVEL, "SYSTEM_MANDATORY_LEVEL"},
	LevelProtected:  {SID_PROTECTED_MANDATORY_LEVEL, "PROTECTED_MANDATORY_LEVEL"},
	LevelSecure:     {SID_SECURE_MANDATORY_LEVEL, "SECURE_MANDATORY_LEVEL"},
}

// Levels lists every well-known level from least to most trusted.
func Levels() []IntegrityLevel {
	out := make([]IntegrityLevel, len(levelTable))
	for i := range levelTable {
		out[i] = IntegrityLevel(i)
	}
	return out
}

func (l IntegrityLevel) valid() bool {
	return l >= LevelUntrusted && int(l) < len(levelTable)
}

// SID returns the string SID of the level, or "" for LevelUnknown.
func (l IntegrityLevel) SID() string {
	if !l.valid() {
		return ""
	}
	return levelTable[l].sid
}

func (l IntegrityLevel) String() string {
	if !l.valid() {
		return "N/A"
	}
	return levelTable[l].name
}

// LevelFromSID maps a string SID to its level ignoring case. Anything that is
// not one of the well-known level SIDs yields LevelUnknown.
func LevelFromSID(sid string) IntegrityLevel {
	for i, e := range levelTable {
		if strings.EqualFold(sid, e.sid) {
			return IntegrityLevel(i)
		}
	}
	return LevelUnknown
}

// MandatoryLevelName returns the level name for a string SID, "N/A" when unknown.
func MandatoryLevelName(sid string) string {
	return LevelFromSID(sid).String()
}

// ParseIntegrityLevel accepts a level index (0 = untrusted ... 7 = secure),
// a level SID, a full level name such as HIGH_MANDATORY_LEVEL or its short
// form (high, medium-plus, mediumplus).
func ParseIntegrityLevel(s string) (IntegrityLevel, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if l := IntegrityLevel(n); l.valid() {
			return l, nil
		}
		return LevelUnknown, errors.Wrapf(ErrUnknownIntegrityLevel, "index %d out of range", n)
	}
	if l := LevelFromSID(s); l != LevelUnknown {
		return l, nil
	}

	short := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(s))
	short = strings.TrimSuffix(short, "_MANDATORY_LEVEL")
	if short == "MEDIUMPLUS" {
		short = "MEDIUM_PLUS"
	}
	for i, e := range levelTable {
		if short == strings.TrimSuffix(e.name, "_MANDATORY_LEVEL") {
			return IntegrityLevel(i), nil
		}
	}
	return LevelUnknown, errors.Wrapf(ErrUnknownIntegrityLevel, "%q", s)
}
