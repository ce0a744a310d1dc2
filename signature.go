package dbuscodec

import "github.com/mdlayher/dbuscodec/wireenc"

// Signature represents a well-formed DBus type signature. The zero value
// is the empty signature "".
//
// This wraps wireenc's pure signature grammar (ValidateSignature,
// splitSingleType) the same way the teacher's sig.go wrapped its own
// validSingle: the grammar itself belongs to the wire format and lives
// in the reflect-free core; this type just gives callers outside the
// core something to hold onto and print.
type Signature struct {
	str string
}

// ParseSignature validates s and returns it as a Signature, or a
// SignatureError if it is malformed.
func ParseSignature(s string) (Signature, error) {
	if len(s) > 255 {
		return Signature{}, SignatureError{Sig: s, Reason: "too long"}
	}
	if err := wireenc.ValidateSignature(s); err != nil {
		return Signature{}, SignatureError{Sig: s, Reason: err.Error()}
	}
	return Signature{str: s}, nil
}

// ParseSignatureMust behaves like ParseSignature but panics on error.
func ParseSignatureMust(s string) Signature {
	sig, err := ParseSignature(s)
	if err != nil {
		panic(err)
	}
	return sig
}

// Empty reports whether s is the empty signature.
func (s Signature) Empty() bool { return s.str == "" }

// String returns the signature's string representation.
func (s Signature) String() string { return s.str }

// SignatureError indicates that a signature string passed to this
// package is not well-formed. It is distinct from the core's
// SignatureTypeError (wireenc.SignatureTypeError), which reports a
// decode-time mismatch between a requested shape and the signature
// actually present on the wire — the two are easy to conflate since the
// distilled spec names both "SignatureError", but they report different
// failures at different times (parse time vs. decode time) and keeping
// them separate avoids a confusing single type with two unrelated
// meanings.
type SignatureError struct {
	Sig    string
	Reason string
}

func (e SignatureError) Error() string {
	return "dbuscodec: invalid signature " + quoteSig(e.Sig) + ": " + e.Reason
}

func quoteSig(s string) string {
	return "\"" + s + "\""
}
