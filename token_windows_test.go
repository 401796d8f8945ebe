//go:build windows

package tokenpriv

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

var procGetProcessHandleCount = windows.NewLazySystemDLL("kernel32.dll").NewProc("GetProcessHandleCount")

func handleCount(t *testing.T) uint32 {
	t.Helper()
	var n uint32
	r1, _, err := procGetProcessHandleCount.Call(uintptr(windows.CurrentProcess()), uintptr(unsafe.Pointer(&n)))
	require.NotZero(t, r1, "GetProcessHandleCount: %v", err)
	return n
}

// openTestToken returns a private copy of the test process token so tests can
// change privileges and labels without touching the process.
func openTestToken(t *testing.T) *Token {
	t.Helper()
	tok, err := OpenProcessToken(0, TokenPrimary)
	require.NoError(t, err)
	t.Cleanup(func() { tok.Close() })
	return tok
}

func isElevated(t *testing.T) bool {
	t.Helper()
	tok, err := OpenProcessToken(0, TokenDirect)
	require.NoError(t, err)
	defer tok.Close()
	return tok.Handle().IsElevated()
}

func TestOpenProcessToken_Types(t *testing.T) {
	for _, typ := range []TokenType{TokenDirect, TokenPrimary, TokenImpersonation} {
		tok, err := OpenProcessToken(0, typ)
		require.NoError(t, err, "type %d", typ)
		assert.Equal(t, typ, tok.Type())
		assert.NotZero(t, tok.Handle())
		assert.NoError(t, tok.Close())
	}

	tok, err := OpenProcessToken(0, TokenLinked)
	if err != nil {
		t.Logf("no linked token available: %v", err)
	} else {
		assert.NoError(t, tok.Close())
	}
}

func TestOpenProcessToken_UnknownType(t *testing.T) {
	tok, err := OpenProcessToken(0, TokenType(99))
	assert.ErrorIs(t, err, ErrUnknownTokenType)
	assert.Nil(t, tok)
}

func TestOpenProcessToken_NoSuchProcess(t *testing.T) {
	before := handleCount(t)
	_, err := OpenProcessToken(0x7ffffffc, TokenPrimary)
	assert.Error(t, err)
	assert.Equal(t, before, handleCount(t))
}

func TestToken_CloseTwice(t *testing.T) {
	tok, err := OpenProcessToken(0, TokenPrimary)
	require.NoError(t, err)
	assert.NoError(t, tok.Close())
	assert.NoError(t, tok.Close())
	assert.Zero(t, tok.Handle())
}

func TestFromHandle_DoesNotClose(t *testing.T) {
	var raw windows.Token
	require.NoError(t, windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &raw))
	defer raw.Close()

	tok := FromHandle(raw)
	require.NoError(t, tok.Close())

	_, err := raw.GetTokenUser()
	assert.NoError(t, err, "caller's handle must stay open")
}

func TestOpenThreadToken_NotImpersonating(t *testing.T) {
	_, err := OpenThreadToken(windows.TOKEN_QUERY)
	assert.ErrorIs(t, err, windows.ERROR_NO_TOKEN)
}

func TestOpenParentProcessToken(t *testing.T) {
	tok, err := OpenParentProcessToken(TokenPrimary)
	require.NoError(t, err)
	defer tok.Close()

	_, err = tok.Privileges()
	assert.NoError(t, err)
}
