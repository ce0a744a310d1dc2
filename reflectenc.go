package dbuscodec

import (
	"reflect"
	"strings"

	"github.com/mdlayher/dbuscodec/wireenc"
)

// This file is the value-description driver for encoding: it walks an
// arbitrary Go value with reflect and calls wireenc.Encoder, the way a
// serde Serializer would walk a value given a derived Serialize impl.
// Go has no derive macro, so this reflect walk is the direct stand-in;
// keeping it in its own file (and out of the wireenc package, which
// never imports reflect) preserves the spec's boundary between the
// value-description layer and the wire-format core.

var (
	variantType    = reflect.TypeOf(Variant{})
	objectPathType = reflect.TypeOf(ObjectPath(""))
	charType       = reflect.TypeOf(Char(0))
)

// InvalidTypeError signals that a Go value cannot be represented in this
// codec's wire format. Grounded in the teacher's dbus.go InvalidTypeError.
type InvalidTypeError struct {
	Type reflect.Type
}

func (e InvalidTypeError) Error() string { return "dbuscodec: invalid type " + e.Type.String() }

func isValidDictKey(k reflect.Kind) bool {
	switch k {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("dbus"); tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

func exported(f reflect.StructField) bool {
	return f.PkgPath == "" && f.Tag.Get("dbus") != "-"
}

// reflectAlignment returns the wire alignment of a Go type, generalizing
// the teacher's dbus.go alignment(reflect.Type) to account for
// SerializerPolicy (a Dict-style struct is wire-shaped as an array, so
// it aligns to 4, not 8).
func reflectAlignment(t reflect.Type, policy wireenc.SerializerPolicy) int {
	switch t {
	case variantType:
		return 1
	case objectPathType:
		return 4
	}
	switch t.Kind() {
	case reflect.Uint8:
		return 1
	case reflect.Uint16, reflect.Int16:
		return 2
	case reflect.Bool, reflect.Uint32, reflect.Int32, reflect.String, reflect.Array, reflect.Slice, reflect.Map, reflect.Interface:
		return 4
	case reflect.Uint64, reflect.Int64, reflect.Float64, reflect.Float32:
		return 8
	case reflect.Ptr:
		return reflectAlignment(t.Elem(), policy)
	case reflect.Struct:
		if t.Name() != "" && policy.QueryStructName(t.Name()) == wireenc.Dict {
			return 4
		}
		return 8
	}
	return 1
}

// signatureOfType returns the signature a Go type encodes as, generalizing
// the teacher's sig.go getSignature to consult a SerializerPolicy for
// named structs.
func signatureOfType(t reflect.Type, policy wireenc.SerializerPolicy) (string, error) {
	if t == nil {
		return "v", nil
	}
	switch t {
	case variantType:
		return "v", nil
	case objectPathType:
		return "o", nil
	case charType:
		return "u", nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return "b", nil
	case reflect.Uint8:
		return "y", nil
	case reflect.Int16:
		return "n", nil
	case reflect.Uint16:
		return "q", nil
	case reflect.Int32:
		return "i", nil
	case reflect.Uint32:
		return "u", nil
	case reflect.Int64:
		return "x", nil
	case reflect.Uint64:
		return "t", nil
	case reflect.Float32, reflect.Float64:
		return "d", nil
	case reflect.String:
		return "s", nil
	case reflect.Ptr:
		return signatureOfType(t.Elem(), policy)
	case reflect.Interface:
		return "v", nil
	case reflect.Slice, reflect.Array:
		elemSig, err := signatureOfType(t.Elem(), policy)
		if err != nil {
			return "", err
		}
		return "a" + elemSig, nil
	case reflect.Map:
		if !isValidDictKey(t.Key().Kind()) {
			return "", InvalidTypeError{Type: t}
		}
		kSig, err := signatureOfType(t.Key(), policy)
		if err != nil {
			return "", err
		}
		vSig, err := signatureOfType(t.Elem(), policy)
		if err != nil {
			return "", err
		}
		return "a{" + kSig + vSig + "}", nil
	case reflect.Struct:
		if t.Name() != "" && policy.QueryStructName(t.Name()) == wireenc.Dict {
			return "a{sv}", nil
		}
		var b strings.Builder
		b.WriteByte('(')
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !exported(f) {
				continue
			}
			s, err := signatureOfType(f.Type, policy)
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
		b.WriteByte(')')
		return b.String(), nil
	}
	return "", InvalidTypeError{Type: t}
}

func marshalValue(e *wireenc.Encoder, v reflect.Value, depth int) error {
	if !v.IsValid() {
		s, err := e.OpenStruct()
		if err != nil {
			return err
		}
		return s.Close()
	}
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			s, err := e.OpenStruct()
			if err != nil {
				return err
			}
			return s.Close()
		}
		return marshalValue(e, v.Elem(), depth)
	case reflect.Interface:
		if v.IsNil() {
			s, err := e.OpenStruct()
			if err != nil {
				return err
			}
			return s.Close()
		}
		return marshalValue(e, v.Elem(), depth)
	case reflect.Bool:
		return e.EncodePrimitive('b', v.Bool())
	case reflect.Uint8:
		return e.EncodePrimitive('y', byte(v.Uint()))
	case reflect.Int16:
		return e.EncodePrimitive('n', int16(v.Int()))
	case reflect.Uint16:
		return e.EncodePrimitive('q', uint16(v.Uint()))
	case reflect.Int32:
		if v.Type() == charType {
			return e.EncodePrimitive('u', uint32(v.Int()))
		}
		return e.EncodePrimitive('i', int32(v.Int()))
	case reflect.Uint32:
		return e.EncodePrimitive('u', uint32(v.Uint()))
	case reflect.Int64:
		return e.EncodePrimitive('x', v.Int())
	case reflect.Uint64:
		return e.EncodePrimitive('t', v.Uint())
	case reflect.Float32:
		return e.EncodePrimitive('d', float64(v.Float()))
	case reflect.Float64:
		return e.EncodePrimitive('d', v.Float())
	case reflect.String:
		if v.Type() == objectPathType {
			return e.EncodePrimitive('o', v.String())
		}
		return e.EncodePrimitive('s', v.String())
	case reflect.Struct:
		if v.Type() == variantType {
			return marshalVariant(e, v.Interface().(Variant))
		}
		return marshalStruct(e, v, depth)
	case reflect.Slice, reflect.Array:
		return marshalSequence(e, v, depth)
	case reflect.Map:
		return marshalMap(e, v, depth)
	default:
		return InvalidTypeError{Type: v.Type()}
	}
}

func marshalStruct(e *wireenc.Encoder, v reflect.Value, depth int) error {
	t := v.Type()
	style := wireenc.StronglyTyped
	if t.Name() != "" {
		style = e.StyleFor(t.Name())
	}
	if style == wireenc.Dict {
		return marshalDictStruct(e, v, depth)
	}
	s, err := e.OpenStruct()
	if err != nil {
		return err
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !exported(f) {
			continue
		}
		if err := marshalValue(s.Encoder(), v.Field(i), depth+1); err != nil {
			return err
		}
	}
	return s.Close()
}

func marshalDictStruct(e *wireenc.Encoder, v reflect.Value, depth int) error {
	t := v.Type()
	d, err := e.OpenDictOfVariant()
	if err != nil {
		return err
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !exported(f) {
			continue
		}
		name := fieldName(f)
		fv := v.Field(i)
		err := d.FinishOptionalItem(name, func(inner *wireenc.Encoder) error {
			return marshalValue(inner, fv, depth+1)
		})
		if err != nil {
			return err
		}
	}
	return d.Close()
}

func marshalSequence(e *wireenc.Encoder, v reflect.Value, depth int) error {
	elemType := v.Type().Elem()
	policy := e.Policy()
	isVariant := elemType.Kind() == reflect.Interface
	declaredSig, err := signatureOfType(elemType, policy)
	if err != nil {
		return err
	}
	alignHint := reflectAlignment(elemType, policy)
	arr, err := e.OpenArray(declaredSig, alignHint)
	if err != nil {
		return err
	}
	for i := 0; i < v.Len(); i++ {
		idx := i
		err := arr.Item(func(inner *wireenc.Encoder) error {
			if isVariant {
				return marshalVariantOf(inner, v.Index(idx).Interface())
			}
			return marshalValue(inner, v.Index(idx), depth+1)
		})
		if err != nil {
			return err
		}
	}
	return arr.Close()
}

func marshalMap(e *wireenc.Encoder, v reflect.Value, depth int) error {
	t := v.Type()
	keyType, valType := t.Key(), t.Elem()
	if !isValidDictKey(keyType.Kind()) {
		return InvalidTypeError{Type: t}
	}
	policy := e.Policy()
	keySig, err := signatureOfType(keyType, policy)
	if err != nil {
		return err
	}
	useVariant := valType.Kind() == reflect.Interface
	valSig, err := signatureOfType(valType, policy)
	if err != nil {
		return err
	}
	d, err := e.OpenDict("{" + keySig + valSig + "}")
	if err != nil {
		return err
	}
	iter := v.MapRange()
	for iter.Next() {
		k, val := iter.Key(), iter.Value()
		err := d.Entry(
			func(inner *wireenc.Encoder) error { return marshalValue(inner, k, depth+2) },
			func(inner *wireenc.Encoder) error {
				if useVariant {
					return marshalVariantOf(inner, val.Interface())
				}
				return marshalValue(inner, val, depth+2)
			},
		)
		if err != nil {
			return err
		}
	}
	return d.Close()
}

func marshalVariantOf(e *wireenc.Encoder, goValue any) error {
	if goValue == nil {
		s, err := e.OpenStruct()
		if err != nil {
			return err
		}
		return s.Close()
	}
	if variant, ok := goValue.(Variant); ok {
		return marshalVariant(e, variant)
	}
	vr, err := e.OpenVariant()
	if err != nil {
		return err
	}
	if err := marshalValue(vr.Encoder(), reflect.ValueOf(goValue), 0); err != nil {
		return err
	}
	return vr.Close(e)
}

func marshalVariant(e *wireenc.Encoder, variant Variant) error {
	vr, err := e.OpenVariant()
	if err != nil {
		return err
	}
	if err := marshalValue(vr.Encoder(), reflect.ValueOf(variant.value), 0); err != nil {
		return err
	}
	return vr.Close(e)
}
