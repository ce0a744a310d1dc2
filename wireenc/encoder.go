package wireenc

// Encoder drives a Builder while tracking the signature being produced
// alongside the bytes. The reflect-based value-description layer
// (dbuscodec.marshalValue and friends) calls these methods; this package
// never inspects a Go value's type itself, only the primitive codes and
// composite events the caller supplies.
type Encoder struct {
	b      *Builder
	sig    []byte
	policy SerializerPolicy
	depth  int
}

// NewEncoder returns an Encoder that will serialize under policy. A nil
// policy defaults to DefaultPolicy.
func NewEncoder(policy SerializerPolicy) *Encoder {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Encoder{b: NewBuilder(), policy: policy}
}

// Policy returns the SerializerPolicy this encoder was built with, so the
// driver can consult it for a given aggregate name.
func (e *Encoder) Policy() SerializerPolicy { return e.policy }

// StyleFor reports how a named aggregate should be serialized.
func (e *Encoder) StyleFor(name string) StructStyle { return e.policy.QueryStructName(name) }

// Signature returns the signature accumulated so far.
func (e *Encoder) Signature() string { return string(e.sig) }

// Bytes resolves and returns the encoded body.
func (e *Encoder) Bytes() []byte { return e.b.Complete() }

func (e *Encoder) childDepth() (int, error) {
	if e.depth+1 > maxDepth {
		return 0, SerializingError{Msg: "maximum nesting depth exceeded"}
	}
	return e.depth + 1, nil
}

// EncodePrimitive encodes one scalar value under its DBus type code.
func (e *Encoder) EncodePrimitive(code byte, v any) error {
	pc, ok := primitives[code]
	if !ok {
		return UnsupportedSignatureCharacterError{B: code}
	}
	if err := pc.EncodeTo(e.b, v); err != nil {
		return err
	}
	e.sig = append(e.sig, code)
	return nil
}

// StructEncoder is a handle for an open struct/tuple "(...)".
type StructEncoder struct {
	e      *Encoder
	closed bool
}

// OpenStruct begins a strongly-typed struct. Fields are encoded by
// calling methods directly on the returned handle's Encoder(); because
// the signature is a single shared buffer, nested opens/closes naturally
// produce correctly bracketed output as long as calls are properly
// nested (never concurrent).
func (e *Encoder) OpenStruct() (*StructEncoder, error) {
	depth, err := e.childDepth()
	if err != nil {
		return nil, err
	}
	e.b.Align(8)
	e.sig = append(e.sig, '(')
	_ = depth
	return &StructEncoder{e: e}, nil
}

// Encoder returns the shared Encoder struct fields should be written to.
func (s *StructEncoder) Encoder() *Encoder { return s.e }

// Close finishes the struct, appending its closing paren.
func (s *StructEncoder) Close() error {
	if s.closed {
		panic("wireenc: struct encoder closed twice")
	}
	s.closed = true
	s.e.sig = append(s.e.sig, ')')
	return nil
}

// ArrayEncoder is a handle for an open array "a...".
type ArrayEncoder struct {
	e               *Encoder
	declaredElemSig string
	elemAlignHint   int
	elemSig         string
	opened          bool
	token           lengthToken
	closed          bool
}

// OpenArray begins an array. The first item's signature becomes the
// array's element signature and every later item must match it.
// declaredElemSig (typed Go slices always know it via reflection, even
// when empty) is written as the element signature only if the array
// turns out to be empty; items are not compared against it. An empty
// array opened with "" is written as av. elemAlignHint is the element
// type's alignment, needed so an empty array still gets the padding its
// (absent) first element would have required.
func (e *Encoder) OpenArray(declaredElemSig string, elemAlignHint int) (*ArrayEncoder, error) {
	depth, err := e.childDepth()
	if err != nil {
		return nil, err
	}
	e.b.Align(4)
	e.sig = append(e.sig, 'a')
	_ = depth
	return &ArrayEncoder{e: e, declaredElemSig: declaredElemSig, elemAlignHint: elemAlignHint}, nil
}

// Item encodes one array element via encodeFn, enforcing that every
// element shares the same signature (§4.4 "array-open").
func (a *ArrayEncoder) Item(encodeFn func(*Encoder) error) error {
	if !a.opened {
		a.token = a.e.b.StartLength()
		a.opened = true
	}
	sigBefore := len(a.e.sig)
	if err := encodeFn(a.e); err != nil {
		return err
	}
	itemSig := string(a.e.sig[sigBefore:])
	switch {
	case a.elemSig == "":
		a.elemSig = itemSig
	case itemSig != a.elemSig:
		return MismatchSignatureError{Expected: a.elemSig, Got: itemSig}
	default:
		a.e.sig = a.e.sig[:sigBefore]
	}
	return nil
}

// Close finishes the array.
func (a *ArrayEncoder) Close() error {
	if a.closed {
		panic("wireenc: array encoder closed twice")
	}
	a.closed = true
	if !a.opened {
		a.token = a.e.b.StartLength()
		a.e.b.Align(a.elemAlignHint)
		elemSig := a.declaredElemSig
		if elemSig == "" {
			elemSig = "v"
		}
		a.e.sig = append(a.e.sig, []byte(elemSig)...)
	}
	a.e.b.FinishLength(a.token)
	return nil
}

// DictEncoder is a handle for an open array-of-dict-entries "a{KV}".
type DictEncoder struct {
	arr *ArrayEncoder
}

// OpenDict begins a dict. declaredEntrySig is the full "{KV}" signature,
// known from the Go map's static key/value types.
func (e *Encoder) OpenDict(declaredEntrySig string) (*DictEncoder, error) {
	arr, err := e.OpenArray(declaredEntrySig, 8)
	if err != nil {
		return nil, err
	}
	return &DictEncoder{arr: arr}, nil
}

// Entry encodes one key/value pair.
func (d *DictEncoder) Entry(encodeKey, encodeVal func(*Encoder) error) error {
	return d.arr.Item(func(e *Encoder) error {
		e.b.Align(8)
		e.sig = append(e.sig, '{')
		if err := encodeKey(e); err != nil {
			return err
		}
		if err := encodeVal(e); err != nil {
			return err
		}
		e.sig = append(e.sig, '}')
		return nil
	})
}

// Close finishes the dict.
func (d *DictEncoder) Close() error { return d.arr.Close() }

// VariantEncoder is a handle for an open variant. Its payload is built in
// an isolated child Encoder so that the embedded signature can be
// computed before any bytes are committed to the parent.
type VariantEncoder struct {
	inner  *Encoder
	closed bool
}

// OpenVariant begins a variant. Write the payload via Encoder(), then
// Close.
func (e *Encoder) OpenVariant() (*VariantEncoder, error) {
	depth, err := e.childDepth()
	if err != nil {
		return nil, err
	}
	return &VariantEncoder{inner: &Encoder{b: NewBuilder(), policy: e.policy, depth: depth}}, nil
}

// Encoder returns the child Encoder the variant's payload should be
// written to.
func (v *VariantEncoder) Encoder() *Encoder { return v.inner }

// Close writes the variant's g-style header (length-prefixed signature,
// NUL terminated) followed by the payload bytes, onto the parent e.
func (v *VariantEncoder) Close(e *Encoder) error {
	if v.closed {
		panic("wireenc: variant encoder closed twice")
	}
	v.closed = true
	sig := v.inner.sig
	if len(sig) > 255 {
		return SerializingError{Msg: "variant signature too long"}
	}
	lenOut := e.b.PrepareWrite(1)
	lenOut[0] = byte(len(sig))
	if len(sig) > 0 {
		sigOut := e.b.PrepareWrite(len(sig))
		copy(sigOut, sig)
	}
	nulOut := e.b.PrepareWrite(1)
	nulOut[0] = 0
	e.b.AppendData(v.inner.b)
	e.sig = append(e.sig, 'v')
	return nil
}

// DictOfVariantEncoder is a handle for an open "a{sv}" with unit-elision:
// an item whose value signature works out to "()" is dropped entirely
// rather than written as an empty struct (§4.4).
type DictOfVariantEncoder struct {
	dict *DictEncoder
}

// OpenDictOfVariant begins an a{sv} map.
func (e *Encoder) OpenDictOfVariant() (*DictOfVariantEncoder, error) {
	d, err := e.OpenDict("{sv}")
	if err != nil {
		return nil, err
	}
	return &DictOfVariantEncoder{dict: d}, nil
}

// FinishOptionalItem encodes name/value as one a{sv} entry, unless
// encodeValue produces a unit value ("()"), in which case the entry is
// elided entirely.
func (dv *DictOfVariantEncoder) FinishOptionalItem(name string, encodeValue func(*Encoder) error) error {
	scratch := &Encoder{b: NewBuilder(), policy: dv.dict.arr.e.policy, depth: dv.dict.arr.e.depth + 1}
	if err := encodeValue(scratch); err != nil {
		return err
	}
	if string(scratch.sig) == "()" {
		return nil
	}
	return dv.dict.Entry(
		func(e *Encoder) error { return e.EncodePrimitive('s', name) },
		func(e *Encoder) error {
			vr := &VariantEncoder{inner: scratch}
			return vr.Close(e)
		},
	)
}

// Close finishes the a{sv} map.
func (dv *DictOfVariantEncoder) Close() error { return dv.dict.Close() }
