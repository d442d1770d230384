package statement

import "fmt"

// FormatError reports a violation of the statement grammar. Line is the
// 1-based physical line of the offending input, or 0 when the failure is not
// line-scoped.
type FormatError struct {
	Msg  string
	Line int
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d)", e.Msg, e.Line)
	}
	return e.Msg
}

func formatErrorf(line int, format string, args ...any) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, args...), Line: line}
}
