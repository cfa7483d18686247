package model

// Logger is the narrow logging surface the core needs. Logging facilities
// are an external collaborator (spec.md §1): the core only ever calls
// through this interface, never a concrete sink. cmd/thumbdisasm wires it to
// github.com/charmbracelet/log; tests wire it to a recording stub.
type Logger interface {
	Debug(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// nopLogger discards everything. Used when ImageModel is constructed without
// an explicit Logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
