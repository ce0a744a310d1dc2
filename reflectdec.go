package dbuscodec

import (
	"reflect"

	"github.com/mdlayher/dbuscodec/wireenc"
)

// This file mirrors reflectenc.go for decoding: the value-description
// driver that walks a destination Go value with reflect and calls
// wireenc.Decoder, Go's stand-in for a serde Deserializer/Visitor.

func unmarshalValue(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	switch v.Kind() {
	case reflect.Ptr:
		return unmarshalPtr(d, v, depth, policy)
	case reflect.Interface:
		dyn, err := decodeDynamic(d, policy)
		if err != nil {
			return err
		}
		if dyn == nil {
			v.Set(reflect.Zero(v.Type()))
		} else {
			v.Set(reflect.ValueOf(dyn))
		}
		return nil
	case reflect.Bool:
		b, err := d.DecodeBool()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Uint8:
		b, err := d.DecodeUint8()
		if err != nil {
			return err
		}
		v.SetUint(uint64(b))
		return nil
	case reflect.Int8:
		x, err := d.DecodeInt8()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Int16:
		x, err := d.DecodeInt16()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Uint16:
		x, err := d.DecodeUint16()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case reflect.Int32:
		if v.Type() == charType {
			r, err := d.DecodeChar()
			if err != nil {
				return err
			}
			v.SetInt(int64(r))
			return nil
		}
		x, err := d.DecodeInt32()
		if err != nil {
			return err
		}
		v.SetInt(int64(x))
		return nil
	case reflect.Uint32:
		x, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	case reflect.Int64:
		x, err := d.DecodeInt64()
		if err != nil {
			return err
		}
		v.SetInt(x)
		return nil
	case reflect.Uint64:
		x, err := d.DecodeUint64()
		if err != nil {
			return err
		}
		v.SetUint(x)
		return nil
	case reflect.Float32:
		f, err := d.DecodeFloat32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))
		return nil
	case reflect.Float64:
		f, err := d.DecodeFloat64()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		if v.Type() == objectPathType {
			s, err := d.DecodeObjectPath()
			if err != nil {
				return err
			}
			v.SetString(s)
			return nil
		}
		s, err := d.DecodeString()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case reflect.Struct:
		if v.Type() == variantType {
			variant, err := unmarshalVariantValue(d, policy)
			if err != nil {
				return err
			}
			v.Set(reflect.ValueOf(variant))
			return nil
		}
		return unmarshalStruct(d, v, depth, policy)
	case reflect.Slice, reflect.Array:
		return unmarshalSequence(d, v, depth, policy)
	case reflect.Map:
		return unmarshalMap(d, v, depth, policy)
	default:
		return InvalidTypeError{Type: v.Type()}
	}
}

// unmarshalPtr realizes the Option<T> convention: a "()" arriving where
// T's own signature is something else means the pointer stays nil; any
// other shape is decoded into a freshly allocated T (§3, §8). This can't
// disambiguate a genuine zero-field T from an absent one, which is an
// accepted limitation of representing Option<T> via a bare pointer (see
// DESIGN.md).
func unmarshalPtr(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	elemType := v.Type().Elem()
	elemSig, err := signatureOfType(elemType, policy)
	if err != nil {
		return err
	}
	head, err := d.PeekSingleType()
	if err != nil {
		return err
	}
	if head == "()" && elemSig != "()" {
		if err := d.OpenStruct(); err != nil {
			return err
		}
		return d.CloseStruct()
	}
	nv := reflect.New(elemType)
	if err := unmarshalValue(d, nv.Elem(), depth, policy); err != nil {
		return err
	}
	v.Set(nv)
	return nil
}

func unmarshalStruct(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	t := v.Type()
	style := wireenc.StronglyTyped
	if t.Name() != "" {
		style = policy.QueryStructName(t.Name())
	}
	if style == wireenc.Dict {
		return unmarshalDictStruct(d, v, depth, policy)
	}
	if err := d.OpenStruct(); err != nil {
		return err
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !exported(f) {
			continue
		}
		if err := unmarshalValue(d, v.Field(i), depth+1, policy); err != nil {
			return err
		}
	}
	return d.CloseStruct()
}

func unmarshalDictStruct(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	t := v.Type()
	byName := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if exported(f) {
			byName[fieldName(f)] = i
		}
	}
	ad, err := d.OpenArray()
	if err != nil {
		return err
	}
	for ad.More() {
		k, val, err := ad.NextEntry()
		if err != nil {
			return err
		}
		name, err := k.DecodeString()
		if err != nil {
			return err
		}
		inner, err := val.Unwrap()
		if err != nil {
			return err
		}
		idx, ok := byName[name]
		if !ok {
			// unknown key: still consume its bytes so the shared data
			// cursor stays in sync for subsequent entries.
			if _, err := decodeDynamic(inner, policy); err != nil {
				return err
			}
			continue
		}
		if err := unmarshalValue(inner, v.Field(idx), depth+1, policy); err != nil {
			return err
		}
	}
	return ad.Close()
}

func unmarshalSequence(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	ad, err := d.OpenArray()
	if err != nil {
		return err
	}
	elemType := v.Type().Elem()
	isVariant := elemType.Kind() == reflect.Interface
	var items []reflect.Value
	for ad.More() {
		item, err := ad.Next()
		if err != nil {
			return err
		}
		ev := reflect.New(elemType).Elem()
		if isVariant {
			dyn, err := decodeDynamic(item, policy)
			if err != nil {
				return err
			}
			if dyn != nil {
				ev.Set(reflect.ValueOf(dyn))
			}
		} else if err := unmarshalValue(item, ev, depth+1, policy); err != nil {
			return err
		}
		items = append(items, ev)
	}
	if err := ad.Close(); err != nil {
		return err
	}
	if v.Kind() == reflect.Array {
		if len(items) != v.Len() {
			return wireenc.DeserializingError{Msg: "array length mismatch"}
		}
		for i, it := range items {
			v.Index(i).Set(it)
		}
		return nil
	}
	slice := reflect.MakeSlice(v.Type(), len(items), len(items))
	for i, it := range items {
		slice.Index(i).Set(it)
	}
	v.Set(slice)
	return nil
}

func unmarshalMap(d *wireenc.Decoder, v reflect.Value, depth int, policy wireenc.SerializerPolicy) error {
	t := v.Type()
	if !isValidDictKey(t.Key().Kind()) {
		return InvalidTypeError{Type: t}
	}
	ad, err := d.OpenArray()
	if err != nil {
		return err
	}
	m := reflect.MakeMap(t)
	isVariant := t.Elem().Kind() == reflect.Interface
	for ad.More() {
		k, val, err := ad.NextEntry()
		if err != nil {
			return err
		}
		kv := reflect.New(t.Key()).Elem()
		if err := unmarshalValue(k, kv, depth+1, policy); err != nil {
			return err
		}
		vv := reflect.New(t.Elem()).Elem()
		if isVariant {
			dyn, err := decodeDynamic(val, policy)
			if err != nil {
				return err
			}
			if dyn != nil {
				vv.Set(reflect.ValueOf(dyn))
			}
		} else if err := unmarshalValue(val, vv, depth+1, policy); err != nil {
			return err
		}
		m.SetMapIndex(kv, vv)
	}
	if err := ad.Close(); err != nil {
		return err
	}
	v.Set(m)
	return nil
}

func unmarshalVariantValue(d *wireenc.Decoder, policy wireenc.SerializerPolicy) (Variant, error) {
	embeddedSig, inner, err := d.OpenVariantRaw()
	if err != nil {
		return Variant{}, err
	}
	val, err := decodeDynamic(inner, policy)
	if err != nil {
		return Variant{}, err
	}
	sig, err := ParseSignature(embeddedSig)
	if err != nil {
		return Variant{}, err
	}
	return Variant{sig: sig, value: val}, nil
}

// decodeDynamic decodes a value into its natural Go shape when the
// destination is interface{}/any: numerics widen no further than their
// wire type, arrays become []any (or map[string]any for dicts with
// string keys -- a dict with a non-string key decoded generically is a
// DeserializingError, a narrower contract than the typed path supports).
func decodeDynamic(d *wireenc.Decoder, policy wireenc.SerializerPolicy) (any, error) {
	if d.IsVariant() {
		inner, err := d.Unwrap()
		if err != nil {
			return nil, err
		}
		return decodeDynamic(inner, policy)
	}
	code, err := d.PeekCode()
	if err != nil {
		return nil, err
	}
	switch code {
	case 'b':
		return d.DecodeBool()
	case 'y':
		return d.DecodeUint8()
	case 'n':
		return d.DecodeInt16()
	case 'q':
		return d.DecodeUint16()
	case 'i':
		return d.DecodeInt32()
	case 'u':
		return d.DecodeUint32()
	case 'x':
		return d.DecodeInt64()
	case 't':
		return d.DecodeUint64()
	case 'd':
		return d.DecodeFloat64()
	case 's':
		return d.DecodeString()
	case 'o':
		s, err := d.DecodeObjectPath()
		return ObjectPath(s), err
	case 'a':
		ad, err := d.OpenArray()
		if err != nil {
			return nil, err
		}
		if ad.IsDict() {
			m := make(map[string]any)
			for ad.More() {
				k, val, err := ad.NextEntry()
				if err != nil {
					return nil, err
				}
				key, err := decodeDynamic(k, policy)
				if err != nil {
					return nil, err
				}
				ks, ok := key.(string)
				if !ok {
					return nil, wireenc.DeserializingError{Msg: "dynamic decode only supports string-keyed dicts"}
				}
				v, err := decodeDynamic(val, policy)
				if err != nil {
					return nil, err
				}
				m[ks] = v
			}
			if err := ad.Close(); err != nil {
				return nil, err
			}
			return m, nil
		}
		out := []any{}
		for ad.More() {
			item, err := ad.Next()
			if err != nil {
				return nil, err
			}
			v, err := decodeDynamic(item, policy)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if err := ad.Close(); err != nil {
			return nil, err
		}
		return out, nil
	case '(':
		if err := d.OpenStruct(); err != nil {
			return nil, err
		}
		out := []any{}
		for !d.StructDone() {
			v, err := decodeDynamic(d, policy)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if err := d.CloseStruct(); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, wireenc.UnsupportedSignatureCharacterError{B: code}
	}
}
