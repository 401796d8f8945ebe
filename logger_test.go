package tokenpriv

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingLogger struct {
	debug, info, errors []string
}

func (r *recordingLogger) Debug(args ...interface{}) { r.debug = append(r.debug, fmt.Sprint(args...)) }
func (r *recordingLogger) Info(args ...interface{})  { r.info = append(r.info, fmt.Sprint(args...)) }
func (r *recordingLogger) Error(args ...interface{}) { r.errors = append(r.errors, fmt.Sprint(args...)) }

// useRecordingLogger installs a recording logger for the duration of the test.
func useRecordingLogger(t *testing.T) *recordingLogger {
	t.Helper()
	r := &recordingLogger{}
	SetLogger(r)
	t.Cleanup(func() { SetLogger(nil) })
	return r
}

func TestSetLogger(t *testing.T) {
	r := useRecordingLogger(t)
	logger.Debug("lookup")
	logger.Info("set", " ", "level")
	logger.Error("failed")

	assert.Equal(t, []string{"lookup"}, r.debug)
	assert.Equal(t, []string{"set level"}, r.info)
	assert.Equal(t, []string{"failed"}, r.errors)
}

func TestSetLogger_NilIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Error("x")
	})
}
