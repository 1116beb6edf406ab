package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

// String markers
const (
	StringAbsent  byte = 0x00
	StringPresent byte = 0x0b
)

// maxUlebBytes is enough groups for any uint64.
const maxUlebBytes = 10

// Reader reads little-endian primitives from a byte slice.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Offset returns the current read position
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(field string, n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, &FieldError{
			Kind:   ErrTruncated,
			Field:  field,
			Offset: r.off,
			Err:    fmt.Errorf("need %d bytes, %d left", n, r.Remaining()),
		}
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// U8 reads one byte
func (r *Reader) U8(field string) (uint8, error) {
	b, err := r.take(field, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads an unsigned 16-bit integer
func (r *Reader) U16(field string) (uint16, error) {
	b, err := r.take(field, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// I16 reads a signed 16-bit integer
func (r *Reader) I16(field string) (int16, error) {
	v, err := r.U16(field)
	return int16(v), err
}

// U32 reads an unsigned 32-bit integer
func (r *Reader) U32(field string) (uint32, error) {
	b, err := r.take(field, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a signed 32-bit integer
func (r *Reader) I32(field string) (int32, error) {
	v, err := r.U32(field)
	return int32(v), err
}

// U64 reads an unsigned 64-bit integer
func (r *Reader) U64(field string) (uint64, error) {
	b, err := r.take(field, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// I64 reads a signed 64-bit integer
func (r *Reader) I64(field string) (int64, error) {
	v, err := r.U64(field)
	return int64(v), err
}

// Bytes reads exactly n bytes. The returned slice aliases the input.
func (r *Reader) Bytes(field string, n int) ([]byte, error) {
	return r.take(field, n)
}

// Uleb128 reads an unsigned LEB128 integer
func (r *Reader) Uleb128(field string) (uint64, error) {
	start := r.off
	var result uint64
	var shift uint
	for i := 0; i < maxUlebBytes; i++ {
		b, err := r.U8(field)
		if err != nil {
			return 0, err
		}
		if i == maxUlebBytes-1 && b > 1 {
			break
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, &FieldError{
		Kind:   ErrMalformedField,
		Field:  field,
		Offset: start,
		Err:    errors.New("uleb128 overflows 64 bits"),
	}
}

// String reads a marker-prefixed UTF-8 string. An absent string decodes to "".
func (r *Reader) String(field string) (string, error) {
	start := r.off
	marker, err := r.U8(field)
	if err != nil {
		return "", err
	}

	switch marker {
	case StringAbsent:
		return "", nil
	case StringPresent:
	default:
		return "", &FieldError{
			Kind:   ErrMalformedField,
			Field:  field,
			Offset: start,
			Err:    fmt.Errorf("invalid string marker %#02x", marker),
		}
	}

	n, err := r.Uleb128(field)
	if err != nil {
		return "", err
	}
	if n > uint64(r.Remaining()) {
		return "", &FieldError{
			Kind:   ErrTruncated,
			Field:  field,
			Offset: r.off,
			Err:    fmt.Errorf("string length %d exceeds %d remaining bytes", n, r.Remaining()),
		}
	}

	payload, err := r.take(field, int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(payload) {
		return "", &FieldError{
			Kind:   ErrEncoding,
			Field:  field,
			Offset: start,
			Err:    errors.New("string is not valid UTF-8"),
		}
	}
	return string(payload), nil
}
