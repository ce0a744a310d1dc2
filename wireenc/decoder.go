package wireenc

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// dataCursor walks the raw byte buffer, shared by every Decoder derived
// from the same root so siblings (e.g. a dict entry's key and value)
// advance the same position.
type dataCursor struct {
	buf []byte
	ix  int
}

func (c *dataCursor) align(a int) {
	n := align(c.ix, a)
	if n > len(c.buf) {
		panic(IndexOutOfBoundsError{Ix: n})
	}
	c.ix = n
}

func (c *dataCursor) take(n int) []byte {
	if c.ix+n > len(c.buf) {
		panic(IndexOutOfBoundsError{Ix: c.ix + n})
	}
	b := c.buf[c.ix : c.ix+n]
	c.ix += n
	return b
}

// Decoder pairs a shared dataCursor with a sigCursor scoped to the
// signature this particular call is responsible for decoding (§3
// "Decoder cursors"/§9).
type Decoder struct {
	data  *dataCursor
	sig   sigCursor
	depth int
}

// NewDecoder returns a Decoder for a full message body and its signature.
func NewDecoder(data []byte, sig string) *Decoder {
	return &Decoder{data: &dataCursor{buf: data}, sig: sigCursor{sig: sig}}
}

func (d *Decoder) childDepth() (int, error) {
	if d.depth+1 > maxDepth {
		return 0, DeserializingError{Msg: "maximum nesting depth exceeded"}
	}
	return d.depth + 1, nil
}

func (d *Decoder) nextCode() (byte, error) {
	code, ok := d.sig.peekByte()
	if !ok {
		return 0, SignatureExhaustedError{}
	}
	return code, nil
}

func (d *Decoder) decodeFixed(want byte) (any, error) {
	code, err := d.nextCode()
	if err != nil {
		return nil, err
	}
	if code != want {
		return nil, SignatureTypeError{Expected: string(want), Got: string(code)}
	}
	pc := primitives[want]
	v, err := pc.DecodeFrom(d.data)
	if err != nil {
		return nil, err
	}
	d.sig.ix++
	return v, nil
}

// DecodeBool decodes a b.
func (d *Decoder) DecodeBool() (bool, error) {
	v, err := d.decodeFixed('b')
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// DecodeUint8 decodes a y.
func (d *Decoder) DecodeUint8() (uint8, error) {
	v, err := d.decodeFixed('y')
	if err != nil {
		return 0, err
	}
	return v.(byte), nil
}

// DecodeInt16 decodes an n.
func (d *Decoder) DecodeInt16() (int16, error) {
	v, err := d.decodeFixed('n')
	if err != nil {
		return 0, err
	}
	return v.(int16), nil
}

// DecodeUint16 decodes a q.
func (d *Decoder) DecodeUint16() (uint16, error) {
	v, err := d.decodeFixed('q')
	if err != nil {
		return 0, err
	}
	return v.(uint16), nil
}

// DecodeInt32 decodes an i.
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.decodeFixed('i')
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

// DecodeUint32 decodes a u. No widening/narrowing conversion applies: a
// mismatched signature always fails (§4.5).
func (d *Decoder) DecodeUint32() (uint32, error) {
	v, err := d.decodeFixed('u')
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

// DecodeInt64 decodes an x.
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.decodeFixed('x')
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// DecodeUint64 decodes a t.
func (d *Decoder) DecodeUint64() (uint64, error) {
	v, err := d.decodeFixed('t')
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

// DecodeFloat64 decodes a d.
func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.decodeFixed('d')
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

// DecodeString decodes an s.
func (d *Decoder) DecodeString() (string, error) {
	v, err := d.decodeFixed('s')
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// DecodeObjectPath decodes an o.
func (d *Decoder) DecodeObjectPath() (string, error) {
	v, err := d.decodeFixed('o')
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// DecodeInt8 decodes an i8 from a signature n (int16), truncating per
// §4.5's documented numeric permissiveness.
func (d *Decoder) DecodeInt8() (int8, error) {
	v, err := d.DecodeInt16()
	if err != nil {
		return 0, err
	}
	return int8(v), nil
}

// DecodeFloat32 decodes an f32 from a signature d (float64), narrowing
// per §4.5.
func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeFloat64()
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// DecodeChar decodes a Unicode scalar value from a signature u (uint32),
// failing with CharTryFromError if the value isn't a valid scalar value.
func (d *Decoder) DecodeChar() (rune, error) {
	v, err := d.DecodeUint32()
	if err != nil {
		return 0, err
	}
	r := rune(v)
	if v > utf8.MaxRune || (v >= 0xD800 && v <= 0xDFFF) {
		return 0, CharTryFromError{U: v}
	}
	return r, nil
}

// PeekCode returns the next signature byte without consuming it.
func (d *Decoder) PeekCode() (byte, error) { return d.nextCode() }

// PeekSingleType returns the single complete type at the front of the
// decoder's remaining signature, without consuming anything. Used by the
// driver to detect a "()" unit marker before committing to allocate a
// pointer destination.
func (d *Decoder) PeekSingleType() (string, error) {
	head, _, err := grabSingle(d.sig.remaining())
	if err != nil {
		return "", err
	}
	return head, nil
}

// IsVariant reports whether the next signature byte is v.
func (d *Decoder) IsVariant() bool {
	code, ok := d.sig.peekByte()
	return ok && code == 'v'
}

// IsUnit reports whether the decoder's whole remaining signature is the
// empty struct "()".
func (d *Decoder) IsUnit() bool {
	return d.sig.remaining() == "()"
}

func (d *Decoder) readVariantHeader() (string, error) {
	code, err := d.nextCode()
	if err != nil {
		return "", err
	}
	if code != 'v' {
		return "", SignatureTypeError{Expected: "v", Got: string(code)}
	}
	n := int(d.data.take(1)[0])
	raw := d.data.take(n + 1)
	if raw[n] != 0 {
		return "", StringConversionError{}
	}
	sig := string(raw[:n])
	if err := ValidateSignature(sig); err != nil {
		return "", err
	}
	d.sig.ix++
	return sig, nil
}

// Unwrap transparently decodes through a variant marker, returning a
// Decoder scoped to the embedded signature.
func (d *Decoder) Unwrap() (*Decoder, error) {
	sig, err := d.readVariantHeader()
	if err != nil {
		return nil, err
	}
	depth, err := d.childDepth()
	if err != nil {
		return nil, err
	}
	return &Decoder{data: d.data, sig: sigCursor{sig: sig}, depth: depth}, nil
}

// OpenVariantRaw exposes the embedded signature and a Decoder scoped to
// it, for callers that need to keep the signature around (to populate a
// Variant value) rather than simply dispatching through it.
func (d *Decoder) OpenVariantRaw() (embeddedSig string, inner *Decoder, err error) {
	sig, err := d.readVariantHeader()
	if err != nil {
		return "", nil, err
	}
	depth, err := d.childDepth()
	if err != nil {
		return "", nil, err
	}
	return sig, &Decoder{data: d.data, sig: sigCursor{sig: sig}, depth: depth}, nil
}

// OpenStruct consumes the opening '(' and aligns the data cursor to 8.
// Struct fields are decoded by calling methods on the receiver directly;
// call StructDone to check for ')' and CloseStruct to consume it.
func (d *Decoder) OpenStruct() error {
	code, err := d.nextCode()
	if err != nil {
		return err
	}
	if code != '(' {
		return SignatureTypeError{Expected: "(", Got: string(code)}
	}
	d.data.align(8)
	d.sig.ix++
	return nil
}

// StructDone reports whether the next signature byte closes the struct.
func (d *Decoder) StructDone() bool {
	code, ok := d.sig.peekByte()
	return ok && code == ')'
}

// CloseStruct consumes the closing ')'.
func (d *Decoder) CloseStruct() error {
	code, ok := d.sig.peekByte()
	if !ok || code != ')' {
		return SignatureTypeError{Expected: ")", Got: d.sig.remaining()}
	}
	d.sig.ix++
	return nil
}

// ArrayDecoder is a handle for an open array being consumed element by
// element.
type ArrayDecoder struct {
	elemSig string
	data    *dataCursor
	end     int
	depth   int
}

// ElementSignature returns the array's element type.
func (a *ArrayDecoder) ElementSignature() string { return a.elemSig }

// IsDict reports whether the array is really a dict-entry array a{KV}.
func (a *ArrayDecoder) IsDict() bool {
	return strings.HasPrefix(a.elemSig, "{")
}

// More reports whether unread bytes remain in the array body.
func (a *ArrayDecoder) More() bool { return a.data.ix < a.end }

// Next returns a Decoder scoped to one element's signature.
func (a *ArrayDecoder) Next() (*Decoder, error) {
	if a.data.ix > a.end {
		return nil, ArrayElementOverrunError{Ix: a.data.ix, End: a.end}
	}
	return &Decoder{data: a.data, sig: sigCursor{sig: a.elemSig}, depth: a.depth + 1}, nil
}

// NextEntry returns Decoders scoped to one dict entry's key and value in
// turn. The key MUST be fully decoded before the value, since both share
// the same dataCursor position.
func (a *ArrayDecoder) NextEntry() (key, value *Decoder, err error) {
	if !a.IsDict() {
		return nil, nil, SignatureTypeError{Expected: "{", Got: a.elemSig}
	}
	if a.data.ix > a.end {
		return nil, nil, ArrayElementOverrunError{Ix: a.data.ix, End: a.end}
	}
	a.data.align(8)
	inner := a.elemSig[1 : len(a.elemSig)-1]
	kSig, vSig, err := grabSingle(inner)
	if err != nil {
		return nil, nil, err
	}
	keyDec := &Decoder{data: a.data, sig: sigCursor{sig: kSig}, depth: a.depth + 1}
	valDec := &Decoder{data: a.data, sig: sigCursor{sig: vSig}, depth: a.depth + 1}
	return keyDec, valDec, nil
}

// Close verifies the array was fully consumed.
func (a *ArrayDecoder) Close() error {
	if a.data.ix != a.end {
		return ArrayElementOverrunError{Ix: a.data.ix, End: a.end}
	}
	return nil
}

// OpenArray consumes the 'a' and element signature, reads the u32 byte
// length, aligns to the element's natural alignment (even if the array
// turns out to be empty), and returns a handle over the element region.
func (d *Decoder) OpenArray() (*ArrayDecoder, error) {
	code, err := d.nextCode()
	if err != nil {
		return nil, err
	}
	if code != 'a' {
		return nil, SignatureTypeError{Expected: "a", Got: string(code)}
	}
	elemSig, _, err := grabSingle(d.sig.remaining()[1:])
	if err != nil {
		return nil, err
	}
	d.data.align(4)
	n := binary.LittleEndian.Uint32(d.data.take(4))
	d.data.align(elementAlignment(elemSig))
	start := d.data.ix
	end := start + int(n)
	if end > len(d.data.buf) {
		return nil, IndexOutOfBoundsError{Ix: end}
	}
	depth, err := d.childDepth()
	if err != nil {
		return nil, err
	}
	d.sig.ix += 1 + len(elemSig)
	return &ArrayDecoder{elemSig: elemSig, data: d.data, end: end, depth: depth}, nil
}

// Finish reports whether the decoder consumed its entire data buffer and
// signature, as required at the root of a decode.
func (d *Decoder) Finish() error {
	if d.data.ix != len(d.data.buf) {
		return LeftoverDataError{N: len(d.data.buf) - d.data.ix}
	}
	if !d.sig.eof() {
		return LeftoverSignatureError{N: len(d.sig.remaining())}
	}
	return nil
}
