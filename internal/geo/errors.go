package geo

import (
	"errors"
	"strconv"
)

// Decode error kinds. Every error returned by the decoder wraps exactly one of them,
// so callers can branch with errors.Is.
var (
	ErrEmptyInput           = errors.New("json string is empty")
	ErrMalformedJSON        = errors.New("not valid JSON")
	ErrNotAnObject          = errors.New("not a JSON object")
	ErrNotAnArray           = errors.New("not an array")
	ErrUnknownType          = errors.New("unknown geometry type")
	ErrTypeMismatch         = errors.New("not of expected type")
	ErrMissingKey           = errors.New("key not found")
	ErrNonNumericCoordinate = errors.New("coordinate not numeric")
	ErrShortPosition        = errors.New("position needs at least two numbers")
	ErrInvalidID            = errors.New("id is neither a string nor a number")
)

// DecodeError describes the first failure met while decoding a document.
type DecodeError struct {
	Context string // caller supplied prefix, e.g. "Error while parsing MultiPoint: "
	Kind    error  // one of the Err* sentinels
	Key     string // member involved, if any
	Want    Type   // expected type for ErrTypeMismatch
	Path    string // gjson style path of the offending element, "" for the root
}

func (e *DecodeError) Error() string {
	var msg string
	switch e.Kind {
	case ErrMissingKey:
		msg = e.Kind.Error() + ": " + e.Key
	case ErrTypeMismatch:
		msg = e.Kind.Error() + ": " + strconv.Quote(e.Want.String())
	case ErrNotAnArray:
		if e.Key != "" {
			msg = e.Key + " " + e.Kind.Error()
		} else {
			msg = "element " + e.Kind.Error()
		}
	default:
		msg = e.Kind.Error()
	}

	if e.Path != "" {
		msg += " (at " + e.Path + ")"
	}

	return e.Context + msg
}

// Unwrap exposes the error kind.
func (e *DecodeError) Unwrap() error {
	return e.Kind
}
