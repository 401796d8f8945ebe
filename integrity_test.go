package tokenpriv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrityLevel_Table(t *testing.T) {
	tests := []struct {
		level IntegrityLevel
		sid   string
		name  string
	}{
		{LevelUntrusted, "S-1-16-0", "UNTRUSTED_MANDATORY_LEVEL"},
		{LevelLow, "S-1-16-4096", "LOW_MANDATORY_LEVEL"},
		{LevelMedium, "S-1-16-8192", "MEDIUM_MANDATORY_LEVEL"},
		{LevelMediumPlus, "S-1-16-8448", "MEDIUM_PLUS_MANDATORY_LEVEL"},
		{LevelHigh, "S-1-16-12288", "HIGH_MANDATORY_LEVEL"},
		{LevelSystem, "S-1-16-16384", "SYSTEM_MANDATORY_LEVEL"},
		{LevelProtected, "S-1-16-20480", "PROTECTED_MANDATORY_LEVEL"},
		{LevelSecure, "S-1-16-28672", "SECURE_MANDATORY_LEVEL"},
	}
	require.Len(t, Levels(), len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.level, Levels()[i])
		assert.Equal(t, tt.sid, tt.level.SID())
		assert.Equal(t, tt.name, tt.level.String())
		assert.Equal(t, tt.level, LevelFromSID(tt.sid))
		assert.Equal(t, tt.level, LevelFromSID(strings.ToLower(tt.sid)))
		assert.Equal(t, tt.name, MandatoryLevelName(tt.sid))
	}
}

func TestIntegrityLevel_Ordered(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		assert.Less(t, levels[i-1], levels[i])
	}
	assert.Less(t, LevelUnknown, LevelUntrusted)
}

func TestLevelFromSID_Unknown(t *testing.T) {
	for _, sid := range []string{"", "S-1-16-1", "S-1-5-18", "not a sid", "S-1-16-8192 "} {
		assert.Equal(t, LevelUnknown, LevelFromSID(sid), "%q", sid)
		assert.Equal(t, "N/A", MandatoryLevelName(sid), "%q", sid)
	}
	assert.Equal(t, "", LevelUnknown.SID())
	assert.Equal(t, "N/A", IntegrityLevel(42).String())
}

func TestParseIntegrityLevel(t *testing.T) {
	tests := []struct {
		in   string
		want IntegrityLevel
	}{
		{"0", LevelUntrusted},
		{"4", LevelHigh},
		{"7", LevelSecure},
		{"S-1-16-4096", LevelLow},
		{"s-1-16-16384", LevelSystem},
		{"HIGH_MANDATORY_LEVEL", LevelHigh},
		{"medium", LevelMedium},
		{"Medium-Plus", LevelMediumPlus},
		{"mediumplus", LevelMediumPlus},
		{" untrusted ", LevelUntrusted},
	}
	for _, tt := range tests {
		got, err := ParseIntegrityLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"8", "-1", "ultra", "S-1-16-1", ""} {
		got, err := ParseIntegrityLevel(in)
		assert.ErrorIs(t, err, ErrUnknownIntegrityLevel, in)
		assert.Equal(t, LevelUnknown, got, in)
	}
}
