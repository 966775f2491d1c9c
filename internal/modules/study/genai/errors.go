package genai

import (
	"errors"
	"strings"
)

// ErrorKind classifies generative service failures.
type ErrorKind int

const (
	KindUpstream ErrorKind = iota
	KindCredential
	KindSafety
	KindRateLimit
)

// Error is a classified generative service failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the error kind; unclassified errors report KindUpstream.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUpstream
}

// classify maps a raw upstream error onto an ErrorKind. The remote service
// surfaces failure categories only through message substrings ("SAFETY",
// "429", "API key not valid"), so the matching lives here and nowhere else.
func classify(err error) *Error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "SAFETY"):
		return &Error{Kind: KindSafety, Err: err}
	case strings.Contains(msg, "429"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return &Error{Kind: KindRateLimit, Err: err}
	case strings.Contains(msg, "API key not valid"), strings.Contains(msg, "API_KEY_INVALID"):
		return &Error{Kind: KindCredential, Err: err}
	default:
		return &Error{Kind: KindUpstream, Err: err}
	}
}
