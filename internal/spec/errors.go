package spec

import "fmt"

// NotFoundError reports a spec root directory that does not exist.
// It aborts the build before any work happens.
type NotFoundError struct {
	Root string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("spec root %s does not exist", e.Root)
}

// ParseError reports a spec file that could not be parsed. Any parse
// failure is fatal for the whole build and always names the offending
// file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse spec %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
