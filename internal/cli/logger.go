// Package cli wires the image model to a terminal: a charmbracelet/log
// logger, and the cobra/fang command tree that drives it.
package cli

import (
	charmlog "github.com/charmbracelet/log"
)

// modelLogger adapts a *charmlog.Logger to model.Logger, grounded on
// logging.NewLoggerWithWriter in the example pack (Dhruvchaudhary255-reverse).
type modelLogger struct {
	l *charmlog.Logger
}

func newModelLogger(l *charmlog.Logger) *modelLogger {
	return &modelLogger{l: l}
}

func (m *modelLogger) Debug(msg string, kv ...any) { m.l.Debug(msg, kv...) }
func (m *modelLogger) Warn(msg string, kv ...any)  { m.l.Warn(msg, kv...) }
func (m *modelLogger) Error(msg string, kv ...any) { m.l.Error(msg, kv...) }
