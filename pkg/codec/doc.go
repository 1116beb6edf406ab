// Package codec provides the primitive field codec for osu! replay files.
//
// Every header field of an .osr file is either a fixed-width little-endian
// integer or a length-prefixed string. This package reads and writes those
// primitives over an in-memory byte slice and is the single place where
// truncation and text-encoding failures originate.
//
// # String Format
//
// Strings are stored with a one byte marker:
//
//	0x00                      empty (absent) string, nothing follows
//	0x0b [ULEB128 n] [n bytes] UTF-8 text of n bytes
//
// ULEB128 is the unsigned base-128 variable length integer: seven bits per
// byte, least significant group first, high bit set on every byte except the
// last. Any other marker byte is rejected with ErrMalformedField.
//
// # Usage
//
//	r := codec.NewReader(data)
//	mode, err := r.U8("mode")
//	if err != nil {
//	    return err
//	}
//	name, err := r.String("player_name")
//	if err != nil {
//	    return err
//	}
//
//	w := codec.NewWriter(64)
//	w.U8(mode)
//	w.String(name)
//	out := w.Bytes()
//
// # Error Handling
//
// Failures are reported with one of the sentinel kinds declared in this
// package (ErrTruncated, ErrMalformedField, ErrEncoding, ...). Header failures
// carry a *FieldError with the field name and byte offset; failures inside the
// ASCII sub-formats carry a *FrameError with the frame index and raw token.
// Both unwrap to their kind and to the underlying cause, so callers can use
// errors.Is and errors.As:
//
//	if errors.Is(err, codec.ErrTruncated) {
//	    var fe *codec.FieldError
//	    if errors.As(err, &fe) {
//	        log.Printf("file ends inside %s at %d", fe.Field, fe.Offset)
//	    }
//	}
//
// # Thread Safety
//
// A Reader or Writer must not be shared between goroutines. Each decode or
// encode call owns its own cursor, so independent calls may run concurrently.
package codec
