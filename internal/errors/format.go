package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// FormatCompact returns a single-line representation of the error.
func (e *Error) FormatCompact() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" - ")
		b.WriteString(e.Detail)
	}
	if e.Wrapped != nil {
		b.WriteString(" (")
		b.WriteString(e.Wrapped.Error())
		b.WriteString(")")
	}
	return b.String()
}

// Fprint writes err to w, adding the hint line for coded errors.
func Fprint(w io.Writer, err error) {
	var e *Error
	if !stderrors.As(err, &e) {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", e.FormatCompact())
	if e.Suggestion != "" {
		fmt.Fprintf(w, "  Hint: %s\n", e.Suggestion)
	}
}
