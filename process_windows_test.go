//go:build windows

package tokenpriv

import (
	"os"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func TestParentProcessID_NullHandle(t *testing.T) {
	ppid, err := ParentProcessID(0)
	assert.ErrorIs(t, err, ErrInvalidHandle)
	assert.Zero(t, ppid)
}

func TestParentProcessID_MatchesProcessTable(t *testing.T) {
	p, err := process.NewProcess(int32(os.Getpid()))
	require.NoError(t, err)
	want, err := p.Ppid()
	require.NoError(t, err)

	got, err := ParentProcessID(windows.CurrentProcess())
	require.NoError(t, err)
	assert.Equal(t, uint32(want), got)
	assert.Equal(t, uint32(os.Getppid()), got)

	byPid, err := ParentProcessIDOf(uint32(os.Getpid()))
	require.NoError(t, err)
	assert.Equal(t, got, byPid)
}

func TestParentProcessIDOf_NoSuchProcess(t *testing.T) {
	before := handleCount(t)
	ppid, err := ParentProcessIDOf(0x7ffffffc)
	assert.Error(t, err)
	assert.Zero(t, ppid)
	assert.Equal(t, before, handleCount(t))
}
