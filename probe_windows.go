package tokenpriv

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

func bufferTooSmall(err error) bool {
	return errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER)
}

// tokenInformation returns the raw GetTokenInformation buffer for class.
func (t *Token) tokenInformation(class uint32) ([]byte, error) {
	if err := t.valid(); err != nil {
		return nil, err
	}
	return probeBuffer(initialProbeSize, func(buf []byte) (int, error) {
		var n uint32
		err := windows.GetTokenInformation(t.token, class, &buf[0], uint32(len(buf)), &n)
		return int(n), err
	}, bufferTooSmall)
}
