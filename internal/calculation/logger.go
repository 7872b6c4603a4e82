package calculation

import "github.com/sirupsen/logrus"

// Logger receives the engine's progress and policy messages. Errors are
// returned to the caller, never logged here.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// the CLI and server hand the engine their logrus logger
var _ Logger = (*logrus.Logger)(nil)

// NopLogger discards everything; engines start with it.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
