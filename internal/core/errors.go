package core

import "fmt"

// ConfigError reports an invalid configuration or rename mapping.
// It aborts the run before any document is written.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Msg
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DocErrorKind identifies which stage of processing a document failed in.
type DocErrorKind string

const (
	DocErrorRead    DocErrorKind = "read"
	DocErrorWrite   DocErrorKind = "write"
	DocErrorRewrite DocErrorKind = "rewrite"
	DocErrorMove    DocErrorKind = "move"
)

// DocError is a per-document failure. It never aborts sibling documents;
// it is recorded and surfaced in the report.
type DocError struct {
	Doc  string
	Kind DocErrorKind
	Err  error
}

func (e *DocError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Doc, e.Err)
}

func (e *DocError) Unwrap() error { return e.Err }
