// Package errs is the error toolkit for the service, a thin layer over
// cockroachdb/errors. Infrastructure failures are wrapped for context,
// usecase sentinels are attached with Mark, and callers test for them
// with Is.
package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg while keeping the original chain intact.
// A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// New creates a sentinel error with a captured stack trace.
func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr as an equivalence marker on err: Is(err, markErr)
// becomes true while err keeps its own message and cause chain. A nil err
// collapses to the marker itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches target anywhere in its chain. Unlike the
// standard library it also sees markers attached with Mark, so sentinel
// checks must go through this function rather than errors.Is.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// ExtractStackLines renders the first maxLines lines of err's verbose form,
// stack trace included, for structured log fields.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
