package codec

import (
	"errors"
	"fmt"
)

// Error kinds. Every decoding failure wraps exactly one of these.
var (
	ErrTruncated        = errors.New("truncated input")
	ErrMalformedField   = errors.New("malformed field")
	ErrMalformedFrame   = errors.New("malformed frame")
	ErrMalformedLifeBar = errors.New("malformed life bar")
	ErrEncoding         = errors.New("invalid encoding")
	ErrCompression      = errors.New("compression failure")
)

// FieldError describes a failure while reading a binary header field.
type FieldError struct {
	Kind   error  // one of the Err* kinds
	Field  string // field name, e.g. "player_name"
	Offset int    // byte offset where the field starts
	Err    error  // underlying cause, may be nil
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%v: field %q at offset %d", e.Kind, e.Field, e.Offset)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// FrameError describes a failure inside one of the comma separated ASCII
// sub-formats (event stream or life bar).
type FrameError struct {
	Kind  error
	Index int    // zero based frame index
	Token string // offending raw frame or token text
	Err   error
}

func (e *FrameError) Error() string {
	msg := fmt.Sprintf("%v: frame %d (%q)", e.Kind, e.Index, e.Token)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FrameError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
