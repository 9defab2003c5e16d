package protocol

import (
	"errors"
	"fmt"
)

// Kind classifies a DecodeError.
type Kind uint8

const (
	// KindUnknown is an unrecognized discriminant (command byte or attribute kind).
	KindUnknown Kind = iota + 1
	// KindMalformed is a value whose bytes do not match its declared type.
	KindMalformed
	// KindTruncated is a declared length or fixed layout that runs past the buffer.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return "unknown"
	case KindMalformed:
		return "malformed"
	case KindTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// DecodeError is the single error type produced by every decode path.
type DecodeError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Unknown reports an unrecognized discriminant. The value is always part of the message.
func Unknown(what string, value uint64) *DecodeError {
	return &DecodeError{Kind: KindUnknown, Msg: fmt.Sprintf("unknown %s: %d", what, value)}
}

// Malformed reports a value that could not be interpreted.
func Malformed(format string, args ...any) *DecodeError {
	return &DecodeError{Kind: KindMalformed, Msg: fmt.Sprintf(format, args...)}
}

// Truncated reports a read past the end of a buffer.
func Truncated(format string, args ...any) *DecodeError {
	return &DecodeError{Kind: KindTruncated, Msg: fmt.Sprintf(format, args...)}
}

// IsDecodeError reports whether err or anything it wraps is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// KindOf returns the kind of the innermost DecodeError in err's chain, or 0.
func KindOf(err error) Kind {
	var kind Kind
	for err != nil {
		var de *DecodeError
		if !errors.As(err, &de) {
			break
		}
		kind = de.Kind
		err = de.Err
	}
	return kind
}
