package wireenc

// This file implements the pure signature grammar: recognizing where one
// complete type ends inside a signature string. It is shared by signature
// validation and by the decoder's sigCursor, which needs to carve off one
// element type at a time (grabSingleSig in the spec's terms).
//
// Grounded in the teacher's sig.go validSingle, reimplemented as a
// recursive-descent scanner that returns a length rather than walking by
// repeated string slicing, so the decoder can reuse it to extract a
// prefix without re-validating the whole remainder each time.

// ValidateSignature reports whether s is a well-formed, complete sequence
// of zero or more single types.
func ValidateSignature(s string) error {
	rest := s
	for rest != "" {
		n, err := splitSingleType(rest, 0)
		if err != nil {
			return err
		}
		rest = rest[n:]
	}
	return nil
}

// grabSingle returns the prefix of s that names exactly one complete type,
// and the remainder. A leading dict entry "{KV}" is accepted here, since
// the decoder hands it an array's element signature.
func grabSingle(s string) (head, rest string, err error) {
	var n int
	if s != "" && s[0] == '{' {
		n, err = splitDictEntry(s, 0)
	} else {
		n, err = splitSingleType(s, 0)
	}
	if err != nil {
		return "", "", err
	}
	return s[:n], s[n:], nil
}

func splitSingleType(s string, depth int) (int, error) {
	if depth > maxDepth {
		return 0, MismatchedSignatureBracketingError{Ix: 0}
	}
	if s == "" {
		return 0, SignatureExhaustedError{}
	}
	switch s[0] {
	case 'y', 'b', 'n', 'q', 'i', 'u', 'x', 't', 'd', 's', 'o', 'g', 'h', 'v':
		return 1, nil
	case 'a':
		split := splitSingleType
		if len(s) > 1 && s[1] == '{' {
			split = splitDictEntry
		}
		n, err := split(s[1:], depth+1)
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	case '(':
		ix := 1
		for ix < len(s) && s[ix] != ')' {
			n, err := splitSingleType(s[ix:], depth+1)
			if err != nil {
				return 0, err
			}
			ix += n
		}
		if ix >= len(s) || s[ix] != ')' {
			return 0, MismatchedSignatureBracketingError{Ix: ix}
		}
		return ix + 1, nil
	case '{', ')', '}':
		// a dict entry is only valid as an array's element type, which
		// the 'a' case above hands to splitDictEntry directly.
		return 0, MismatchedSignatureBracketingError{Ix: 0}
	default:
		return 0, UnrecognizedSignatureCharacterError{B: s[0]}
	}
}

// splitDictEntry returns the length of the dict entry "{KV}" at the front
// of s.
func splitDictEntry(s string, depth int) (int, error) {
	if depth > maxDepth {
		return 0, MismatchedSignatureBracketingError{Ix: 0}
	}
	kn, err := splitSingleType(s[1:], depth+1)
	if err != nil {
		return 0, err
	}
	vn, err := splitSingleType(s[1+kn:], depth+1)
	if err != nil {
		return 0, err
	}
	end := 1 + kn + vn
	if end >= len(s) || s[end] != '}' {
		return 0, MismatchedSignatureBracketingError{Ix: end}
	}
	return end + 1, nil
}

// elementAlignment returns the wire alignment of a single complete type
// signature, used by array decoding to know how much padding
// precedes the element region before any element has been read (e.g. for
// an empty array).
func elementAlignment(sig string) int {
	if sig == "" {
		return 1
	}
	switch sig[0] {
	case 'a':
		return 4
	case '(':
		return 8
	case '{':
		return 8
	case 'v':
		return 1
	default:
		if pc, ok := primitives[sig[0]]; ok {
			return pc.Alignment()
		}
		return 1
	}
}

type sigCursor struct {
	sig string
	ix  int
}

func (c *sigCursor) remaining() string { return c.sig[c.ix:] }

func (c *sigCursor) eof() bool { return c.ix >= len(c.sig) }

func (c *sigCursor) peekByte() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.sig[c.ix], true
}
