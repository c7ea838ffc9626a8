package instance

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInputNotFound indicates the input file does not exist.
	ErrInputNotFound = errors.New("instance: input file not found")
	// ErrIO indicates the input could not be read.
	ErrIO = errors.New("instance: read failure")
)

// ParseError reports a line that does not follow the input grammar.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("instance: %s", e.Msg)
	}
	return fmt.Sprintf("instance: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

func parseErrorf(line int, text, format string, args ...interface{}) error {
	return &ParseError{Line: line, Text: text, Msg: fmt.Sprintf(format, args...)}
}
