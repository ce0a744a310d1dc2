package wireenc

import "fmt"

// SerializingError reports that the value-description layer failed while
// producing a value to encode.
type SerializingError struct{ Msg string }

func (e SerializingError) Error() string { return "wireenc: serializing: " + e.Msg }

// DeserializingError reports that the value-description layer rejected a
// decoded value (e.g. it didn't fit the destination type).
type DeserializingError struct{ Msg string }

func (e DeserializingError) Error() string { return "wireenc: deserializing: " + e.Msg }

// MismatchSignatureError is raised when an array element or a variant
// payload disagrees with the element type already declared for that array.
type MismatchSignatureError struct{ Expected, Got string }

func (e MismatchSignatureError) Error() string {
	return fmt.Sprintf("wireenc: mismatched signature: expected %q, got %q", e.Expected, e.Got)
}

// StringConversionError reports bytes that were not valid UTF-8 where a
// string was expected, or a missing/garbled NUL terminator.
type StringConversionError struct{}

func (e StringConversionError) Error() string { return "wireenc: invalid string encoding" }

// LeftoverDataError reports that the message body had bytes left over after
// the root value was fully decoded.
type LeftoverDataError struct{ N int }

func (e LeftoverDataError) Error() string {
	return fmt.Sprintf("wireenc: %d leftover byte(s) after decode", e.N)
}

// LeftoverSignatureError reports that the signature had bytes left over
// after the root value was fully decoded.
type LeftoverSignatureError struct{ N int }

func (e LeftoverSignatureError) Error() string {
	return fmt.Sprintf("wireenc: %d leftover signature byte(s) after decode", e.N)
}

// UnrecognizedSignatureCharacterError reports a byte in a signature string
// that is not any known DBus type code.
type UnrecognizedSignatureCharacterError struct{ B byte }

func (e UnrecognizedSignatureCharacterError) Error() string {
	return fmt.Sprintf("wireenc: unrecognized signature character %q", e.B)
}

// UnsupportedSignatureCharacterError reports a syntactically valid type
// code (h, g as a standalone value) that this core declines to encode or
// decode as a primitive value.
type UnsupportedSignatureCharacterError struct{ B byte }

func (e UnsupportedSignatureCharacterError) Error() string {
	return fmt.Sprintf("wireenc: unsupported signature character %q", e.B)
}

// SignatureTypeError reports that a visitor asked for a shape that the
// signature at the cursor does not provide and no permissive conversion
// applies (§4.5 "Numeric permissiveness").
type SignatureTypeError struct{ Expected, Got string }

func (e SignatureTypeError) Error() string {
	return fmt.Sprintf("wireenc: signature mismatch: expected %q, got %q", e.Expected, e.Got)
}

// SignatureErrorIx reports a malformed signature at a specific index.
type SignatureErrorIx struct {
	Expected string
	Ix       int
}

func (e SignatureErrorIx) Error() string {
	return fmt.Sprintf("wireenc: expected %q at signature index %d", e.Expected, e.Ix)
}

// SignatureExhaustedError reports that the signature cursor ran out of
// bytes while a type was still expected.
type SignatureExhaustedError struct{}

func (e SignatureExhaustedError) Error() string { return "wireenc: signature exhausted" }

// IndexOutOfBoundsError reports that the data cursor advanced past the end
// of the buffer.
type IndexOutOfBoundsError struct{ Ix int }

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("wireenc: index %d out of bounds", e.Ix)
}

// InvalidBoolValueError reports a boolean whose encoded u32 was neither 0
// nor 1.
type InvalidBoolValueError struct{ U uint32 }

func (e InvalidBoolValueError) Error() string {
	return fmt.Sprintf("wireenc: invalid bool value %d", e.U)
}

// CharTryFromError reports a decoded u32 that is not a valid Unicode
// scalar value.
type CharTryFromError struct{ U uint32 }

func (e CharTryFromError) Error() string {
	return fmt.Sprintf("wireenc: %d is not a valid char", e.U)
}

// MismatchedSignatureBracketingError reports unbalanced ( ) or { } in a
// signature string.
type MismatchedSignatureBracketingError struct{ Ix int }

func (e MismatchedSignatureBracketingError) Error() string {
	return fmt.Sprintf("wireenc: mismatched signature bracketing at index %d", e.Ix)
}

// ArrayElementOverrunError reports that decoding an array element read past
// the array's declared byte length.
type ArrayElementOverrunError struct{ Ix, End int }

func (e ArrayElementOverrunError) Error() string {
	return fmt.Sprintf("wireenc: array element overran bound: at %d, end %d", e.Ix, e.End)
}
