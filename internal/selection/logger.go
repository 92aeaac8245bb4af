package selection

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.Entry]

func init() {
	loggerPtr.Store(newNopLogger())
}

// newNopLogger discards everything so the package is silent unless a host
// opts in.
func newNopLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

// SetLogger routes selection diagnostics to l. Pass nil to silence them again.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		loggerPtr.Store(newNopLogger())
		return
	}
	loggerPtr.Store(l.WithField("component", "selection"))
}

// Logger returns the current package logger
func Logger() *logrus.Entry {
	return loggerPtr.Load()
}
