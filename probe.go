package tokenpriv

import "github.com/pkg/errors"

const (
	initialProbeSize = 64
	maxProbeAttempts = 8
)

// probeBuffer runs query with a buffer of size elements and grows it whenever
// tooSmall reports the OS rejected it for its size. query returns the number of
// elements the OS wrote on success, or the number it asked for on a size failure.
// The required size can change between attempts (a privilege added by another
// thread), so the loop keeps going until it succeeds, hits a different error or
// runs out of attempts.
func probeBuffer[T any](size int, query func(buf []T) (int, error), tooSmall func(error) bool) ([]T, error) {
	if size <= 0 {
		size = initialProbeSize
	}
	for attempt := 0; attempt < maxProbeAttempts; attempt++ {
		buf := make([]T, size)
		n, err := query(buf)
		if err == nil {
			if n > 0 && n < len(buf) {
				buf = buf[:n]
			}
			return buf, nil
		}
		if !tooSmall(err) {
			return nil, err
		}
		if n > size {
			size = n
		} else {
			size *= 2
		}
	}
	return nil, errors.Wrapf(ErrProbeExhausted, "gave up after %d attempts", maxProbeAttempts)
}
