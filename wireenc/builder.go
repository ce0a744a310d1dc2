package wireenc

import (
	"encoding/binary"
	"sync/atomic"
)

// lengthTokenCounter hands out unique tokens identifying an in-flight
// array/dict length. Grounded in the teacher's deleted transport-layer
// sequence-number generator, which used exactly this package-level
// atomic-counter idiom to hand out unique serials.
var lengthTokenCounter atomic.Uint64

type lengthToken uint64

func newLengthToken() lengthToken {
	return lengthToken(lengthTokenCounter.Add(1))
}

type componentKind int

const (
	kindAlignSlice componentKind = iota
	kindLengthBegin
	kindLengthEnd
)

// component is one entry in a Builder's deferred instruction stream
// (§4.3). An alignment slice carries a declared alignment and the bytes
// written into it so far; it is never split once any byte has landed in
// it. Length-begin/end are markers bracketing the bytes whose count must
// be backfilled once their true extent is known.
type component struct {
	kind      componentKind
	alignment int
	data      []byte
	token     lengthToken
}

// Builder assembles a DBus value body using the deferred-alignment,
// backfilled-length algorithm described in SPEC_FULL.md §4.3: alignment
// decisions for an array's first element can't be made until it's known
// whether the array holds anything, so raw padding is deferred into
// alignment slices and spliced together only once the whole value is
// known, via Complete.
type Builder struct {
	components []component
}

// NewBuilder returns a Builder ready to accept writes at alignment 1.
func NewBuilder() *Builder {
	return &Builder{components: []component{{kind: kindAlignSlice, alignment: 1}}}
}

func (b *Builder) top() *component {
	return &b.components[len(b.components)-1]
}

// Align records that the next bytes written must land on an a-byte
// boundary relative to the final output. If the current slice is still
// empty, its own required alignment is simply raised (deferring the
// padding decision further); if it already holds bytes at an alignment
// that can't satisfy a, a fresh slice is opened.
func (b *Builder) Align(a int) {
	if a <= 1 {
		return
	}
	top := b.top()
	if top.kind != kindAlignSlice {
		panic("wireenc: builder invariant violated: top is not an alignment slice")
	}
	switch {
	case len(top.data) == 0:
		if a > top.alignment {
			top.alignment = a
		}
	case top.alignment >= a:
		padded := align(len(top.data), a)
		if padded > len(top.data) {
			top.data = append(top.data, make([]byte, padded-len(top.data))...)
		}
	default:
		b.components = append(b.components, component{kind: kindAlignSlice, alignment: a})
	}
}

// PrepareWrite reserves n bytes in the current alignment slice and
// returns them for the caller to fill in place.
func (b *Builder) PrepareWrite(n int) []byte {
	top := b.top()
	if top.kind != kindAlignSlice {
		panic("wireenc: builder invariant violated: top is not an alignment slice")
	}
	start := len(top.data)
	top.data = append(top.data, make([]byte, n)...)
	return top.data[start : start+n]
}

// StartLength opens a new length-counted region (the body of an array or
// dict) and returns a token identifying it for FinishLength.
func (b *Builder) StartLength() lengthToken {
	tok := newLengthToken()
	b.components = append(b.components,
		component{kind: kindLengthBegin, token: tok},
		component{kind: kindAlignSlice, alignment: 1},
	)
	return tok
}

// FinishLength closes the region opened by the matching StartLength.
func (b *Builder) FinishLength(tok lengthToken) {
	b.components = append(b.components,
		component{kind: kindLengthEnd, token: tok},
		component{kind: kindAlignSlice, alignment: 1},
	)
}

// AppendData splices another, not-yet-completed Builder's instruction
// stream into this one, replaying its alignment slices as Align+write
// calls (so the spliced data inherits this builder's absolute offset)
// and carrying its length markers through verbatim, each followed by a
// fresh alignment slice as StartLength/FinishLength do. This is how a
// variant's inner value is embedded into its parent without prematurely
// resolving the inner value's own padding.
func (b *Builder) AppendData(other *Builder) {
	for _, c := range other.components {
		switch c.kind {
		case kindAlignSlice:
			b.Align(c.alignment)
			if len(c.data) > 0 {
				dst := b.PrepareWrite(len(c.data))
				copy(dst, c.data)
			}
		case kindLengthBegin:
			b.components = append(b.components,
				component{kind: kindLengthBegin, token: c.token},
				component{kind: kindAlignSlice, alignment: 1},
			)
		case kindLengthEnd:
			b.components = append(b.components,
				component{kind: kindLengthEnd, token: c.token},
				component{kind: kindAlignSlice, alignment: 1},
			)
		}
	}
	if b.top().kind != kindAlignSlice {
		b.components = append(b.components, component{kind: kindAlignSlice, alignment: 1})
	}
}

// Complete resolves every deferred alignment slice and backfilled length
// into a single contiguous byte stream.
func (b *Builder) Complete() []byte {
	var out []byte
	starts := make(map[lengthToken]int)
	fills := make(map[lengthToken]int)
	var pendingStart []lengthToken
	for i := range b.components {
		c := &b.components[i]
		switch c.kind {
		case kindAlignSlice:
			padded := align(len(out), c.alignment)
			if padded > len(out) {
				out = append(out, make([]byte, padded-len(out))...)
			}
			if len(pendingStart) > 0 {
				for _, tok := range pendingStart {
					starts[tok] = len(out)
				}
				pendingStart = pendingStart[:0]
			}
			out = append(out, c.data...)
		case kindLengthBegin:
			fills[c.token] = len(out)
			out = append(out, 0, 0, 0, 0)
			pendingStart = append(pendingStart, c.token)
		case kindLengthEnd:
			start := starts[c.token]
			n := uint32(len(out) - start)
			binary.LittleEndian.PutUint32(out[fills[c.token]:], n)
			delete(starts, c.token)
			delete(fills, c.token)
		}
	}
	return out
}
