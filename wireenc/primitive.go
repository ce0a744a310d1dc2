package wireenc

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// PrimitiveCodec describes the wire behavior of one DBus scalar type: its
// signature byte, its alignment, and how to move a Go value of the
// matching shape to and from a byte stream. This generalizes the
// teacher's sigToType map (a byte -> reflect.Type lookup table) into a
// byte -> behavior table, since the core package never imports reflect.
type PrimitiveCodec interface {
	Signature() byte
	Alignment() int
	EncodeTo(b *Builder, v any) error
	DecodeFrom(c *dataCursor) (any, error)
}

type fixedNumCodec struct {
	sig   byte
	align int
	size  int
	enc   func(out []byte, v any) error
	dec   func(in []byte) (any, error)
}

func (c fixedNumCodec) Signature() byte { return c.sig }
func (c fixedNumCodec) Alignment() int  { return c.align }

func (c fixedNumCodec) EncodeTo(b *Builder, v any) error {
	b.Align(c.align)
	out := b.PrepareWrite(c.size)
	return c.enc(out, v)
}

func (c fixedNumCodec) DecodeFrom(cur *dataCursor) (any, error) {
	cur.align(c.align)
	return c.dec(cur.take(c.size))
}

type stringCodec struct{ sig byte }

func (c stringCodec) Signature() byte { return c.sig }
func (c stringCodec) Alignment() int  { return 4 }

func (c stringCodec) EncodeTo(b *Builder, v any) error {
	s, ok := v.(string)
	if !ok {
		return SerializingError{Msg: "expected string-shaped value"}
	}
	if !utf8.ValidString(s) {
		return StringConversionError{}
	}
	b.Align(4)
	lenOut := b.PrepareWrite(4)
	binary.LittleEndian.PutUint32(lenOut, uint32(len(s)))
	strOut := b.PrepareWrite(len(s) + 1)
	copy(strOut, s)
	strOut[len(s)] = 0
	return nil
}

func (c stringCodec) DecodeFrom(cur *dataCursor) (any, error) {
	cur.align(4)
	n := binary.LittleEndian.Uint32(cur.take(4))
	raw := cur.take(int(n) + 1)
	if raw[n] != 0 {
		return nil, StringConversionError{}
	}
	s := raw[:n]
	if !utf8.Valid(s) {
		return nil, StringConversionError{}
	}
	return string(s), nil
}

var boolCodec = fixedNumCodec{
	sig: 'b', align: 4, size: 4,
	enc: func(out []byte, v any) error {
		bv, ok := v.(bool)
		if !ok {
			return SerializingError{Msg: "expected bool value"}
		}
		var u uint32
		if bv {
			u = 1
		}
		binary.LittleEndian.PutUint32(out, u)
		return nil
	},
	dec: func(in []byte) (any, error) {
		switch u := binary.LittleEndian.Uint32(in); u {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return nil, InvalidBoolValueError{U: u}
		}
	},
}

var byteCodec = fixedNumCodec{
	sig: 'y', align: 1, size: 1,
	enc: func(out []byte, v any) error {
		bv, ok := v.(byte)
		if !ok {
			return SerializingError{Msg: "expected byte value"}
		}
		out[0] = bv
		return nil
	},
	dec: func(in []byte) (any, error) { return in[0], nil },
}

var int16Codec = fixedNumCodec{
	sig: 'n', align: 2, size: 2,
	enc: func(out []byte, v any) error {
		iv, ok := v.(int16)
		if !ok {
			return SerializingError{Msg: "expected int16 value"}
		}
		binary.LittleEndian.PutUint16(out, uint16(iv))
		return nil
	},
	dec: func(in []byte) (any, error) { return int16(binary.LittleEndian.Uint16(in)), nil },
}

var uint16Codec = fixedNumCodec{
	sig: 'q', align: 2, size: 2,
	enc: func(out []byte, v any) error {
		uv, ok := v.(uint16)
		if !ok {
			return SerializingError{Msg: "expected uint16 value"}
		}
		binary.LittleEndian.PutUint16(out, uv)
		return nil
	},
	dec: func(in []byte) (any, error) { return binary.LittleEndian.Uint16(in), nil },
}

var int32Codec = fixedNumCodec{
	sig: 'i', align: 4, size: 4,
	enc: func(out []byte, v any) error {
		iv, ok := v.(int32)
		if !ok {
			return SerializingError{Msg: "expected int32 value"}
		}
		binary.LittleEndian.PutUint32(out, uint32(iv))
		return nil
	},
	dec: func(in []byte) (any, error) { return int32(binary.LittleEndian.Uint32(in)), nil },
}

var uint32Codec = fixedNumCodec{
	sig: 'u', align: 4, size: 4,
	enc: func(out []byte, v any) error {
		uv, ok := v.(uint32)
		if !ok {
			return SerializingError{Msg: "expected uint32 value"}
		}
		binary.LittleEndian.PutUint32(out, uv)
		return nil
	},
	dec: func(in []byte) (any, error) { return binary.LittleEndian.Uint32(in), nil },
}

var int64Codec = fixedNumCodec{
	sig: 'x', align: 8, size: 8,
	enc: func(out []byte, v any) error {
		iv, ok := v.(int64)
		if !ok {
			return SerializingError{Msg: "expected int64 value"}
		}
		binary.LittleEndian.PutUint64(out, uint64(iv))
		return nil
	},
	dec: func(in []byte) (any, error) { return int64(binary.LittleEndian.Uint64(in)), nil },
}

var uint64Codec = fixedNumCodec{
	sig: 't', align: 8, size: 8,
	enc: func(out []byte, v any) error {
		uv, ok := v.(uint64)
		if !ok {
			return SerializingError{Msg: "expected uint64 value"}
		}
		binary.LittleEndian.PutUint64(out, uv)
		return nil
	},
	dec: func(in []byte) (any, error) { return binary.LittleEndian.Uint64(in), nil },
}

var float64Codec = fixedNumCodec{
	sig: 'd', align: 8, size: 8,
	enc: func(out []byte, v any) error {
		fv, ok := v.(float64)
		if !ok {
			return SerializingError{Msg: "expected float64 value"}
		}
		binary.LittleEndian.PutUint64(out, math.Float64bits(fv))
		return nil
	},
	dec: func(in []byte) (any, error) { return math.Float64frombits(binary.LittleEndian.Uint64(in)), nil },
}

// primitives holds every type code this core treats as a first-class
// scalar. h (unix fd) and g (bare signature) are deliberately absent:
// file descriptor passing is out of scope, and a signature is only ever
// valid nested inside a variant's own header, never as a standalone value
// (see SPEC_FULL.md §6).
var primitives = map[byte]PrimitiveCodec{
	'y': byteCodec,
	'b': boolCodec,
	'n': int16Codec,
	'q': uint16Codec,
	'i': int32Codec,
	'u': uint32Codec,
	'x': int64Codec,
	't': uint64Codec,
	'd': float64Codec,
	's': stringCodec{sig: 's'},
	'o': stringCodec{sig: 'o'},
}

// LookupPrimitive exposes the dispatch table to callers outside the
// package.
func LookupPrimitive(code byte) (PrimitiveCodec, bool) {
	pc, ok := primitives[code]
	return pc, ok
}
