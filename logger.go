package tokenpriv

type iLogger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Error(args ...interface{})
}

type quasiLogger func(args ...interface{})

var logger iLogger

func init() {
	logger = quasiLogger(func(args ...interface{}) {})
}

// SetLogger routes the library's reports (attempts, outcomes and every failure
// of a privilege or integrity change) to l. Passing nil silences them again.
func SetLogger(l iLogger) {
	if l == nil {
		l = quasiLogger(func(args ...interface{}) {})
	}
	logger = l
}

func (q quasiLogger) Debug(args ...interface{}) {
	q(args...)
}

func (q quasiLogger) Info(args ...interface{}) {
	q(args...)
}

func (q quasiLogger) Error(args ...interface{}) {
	q(args...)
}
