package wireenc

import (
	"bytes"
	"testing"
)

func TestEncodeInt32RoundTrip(t *testing.T) {
	e := NewEncoder(nil)
	if err := e.EncodePrimitive('i', int32(37)); err != nil {
		t.Fatal(err)
	}
	if got := e.Signature(); got != "i" {
		t.Fatalf("signature = %q, want %q", got, "i")
	}
	d := NewDecoder(e.Bytes(), e.Signature())
	v, err := d.DecodeInt32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 37 {
		t.Fatalf("got %d, want 37", v)
	}
	if err := d.Finish(); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeStructRoundTrip(t *testing.T) {
	e := NewEncoder(nil)
	s, err := e.OpenStruct()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Encoder().EncodePrimitive('s', "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.Encoder().EncodePrimitive('d', 1.5); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if got := e.Signature(); got != "(sd)" {
		t.Fatalf("signature = %q, want %q", got, "(sd)")
	}

	d := NewDecoder(e.Bytes(), e.Signature())
	if err := d.OpenStruct(); err != nil {
		t.Fatal(err)
	}
	str, err := d.DecodeString()
	if err != nil {
		t.Fatal(err)
	}
	if str != "a" {
		t.Fatalf("got %q, want %q", str, "a")
	}
	f, err := d.DecodeFloat64()
	if err != nil {
		t.Fatal(err)
	}
	if f != 1.5 {
		t.Fatalf("got %v, want 1.5", f)
	}
	if err := d.CloseStruct(); err != nil {
		t.Fatal(err)
	}
	if err := d.Finish(); err != nil {
		t.Fatal(err)
	}
}

func TestEncodeArrayRoundTrip(t *testing.T) {
	e := NewEncoder(nil)
	arr, err := e.OpenArray("i", 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []int32{1, 2, 3} {
		v := v
		if err := arr.Item(func(inner *Encoder) error { return inner.EncodePrimitive('i', v) }); err != nil {
			t.Fatal(err)
		}
	}
	if err := arr.Close(); err != nil {
		t.Fatal(err)
	}
	if got := e.Signature(); got != "ai" {
		t.Fatalf("signature = %q, want %q", got, "ai")
	}

	d := NewDecoder(e.Bytes(), e.Signature())
	ad, err := d.OpenArray()
	if err != nil {
		t.Fatal(err)
	}
	var got []int32
	for ad.More() {
		item, err := ad.Next()
		if err != nil {
			t.Fatal(err)
		}
		v, err := item.DecodeInt32()
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, v)
	}
	if err := ad.Close(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeEmptyArrayPadding(t *testing.T) {
	e := NewEncoder(nil)
	e.EncodePrimitive('y', byte(1))
	arr, err := e.OpenArray("x", 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := arr.Close(); err != nil {
		t.Fatal(err)
	}
	data := e.Bytes()
	// byte, then pad to 4 (array length alignment): 3 bytes, then u32
	// length=0, which ends at offset 8: already aligned for the (empty)
	// x-typed body, so no further padding.
	want := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(data, want) {
		t.Fatalf("got %v, want %v", data, want)
	}
}

func TestArrayMismatchSignature(t *testing.T) {
	e := NewEncoder(nil)
	arr, err := e.OpenArray("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := arr.Item(func(inner *Encoder) error { return inner.EncodePrimitive('i', int32(1)) }); err != nil {
		t.Fatal(err)
	}
	err = arr.Item(func(inner *Encoder) error { return inner.EncodePrimitive('s', "x") })
	if _, ok := err.(MismatchSignatureError); !ok {
		t.Fatalf("got %v, want MismatchSignatureError", err)
	}
}

func TestVariantRoundTrip(t *testing.T) {
	e := NewEncoder(nil)
	vr, err := e.OpenVariant()
	if err != nil {
		t.Fatal(err)
	}
	if err := vr.Encoder().EncodePrimitive('i', int32(42)); err != nil {
		t.Fatal(err)
	}
	if err := vr.Close(e); err != nil {
		t.Fatal(err)
	}
	if got := e.Signature(); got != "v" {
		t.Fatalf("signature = %q, want %q", got, "v")
	}

	d := NewDecoder(e.Bytes(), e.Signature())
	inner, err := d.Unwrap()
	if err != nil {
		t.Fatal(err)
	}
	v, err := inner.DecodeInt32()
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("got %d, want 42", v)
	}
}

func TestDictOfVariantUnitElision(t *testing.T) {
	e := NewEncoder(nil)
	dv, err := e.OpenDictOfVariant()
	if err != nil {
		t.Fatal(err)
	}
	if err := dv.FinishOptionalItem("kept", func(inner *Encoder) error {
		return inner.EncodePrimitive('i', int32(1))
	}); err != nil {
		t.Fatal(err)
	}
	if err := dv.FinishOptionalItem("dropped", func(inner *Encoder) error {
		s, err := inner.OpenStruct()
		if err != nil {
			return err
		}
		return s.Close()
	}); err != nil {
		t.Fatal(err)
	}
	if err := dv.Close(); err != nil {
		t.Fatal(err)
	}

	d := NewDecoder(e.Bytes(), e.Signature())
	ad, err := d.OpenArray()
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for ad.More() {
		k, v, err := ad.NextEntry()
		if err != nil {
			t.Fatal(err)
		}
		key, err := k.DecodeString()
		if err != nil {
			t.Fatal(err)
		}
		if key != "kept" {
			t.Fatalf("unexpected surviving key %q", key)
		}
		inner, err := v.Unwrap()
		if err != nil {
			t.Fatal(err)
		}
		val, err := inner.DecodeInt32()
		if err != nil {
			t.Fatal(err)
		}
		if val != 1 {
			t.Fatalf("got %d for key %q, want 1", val, key)
		}
		count++
	}
	if count != 1 {
		t.Fatalf("got %d entries, want 1", count)
	}
}

func TestLeftoverData(t *testing.T) {
	e := NewEncoder(nil)
	e.EncodePrimitive('i', int32(1))
	e.EncodePrimitive('i', int32(2))
	d := NewDecoder(e.Bytes(), "i")
	if _, err := d.DecodeInt32(); err != nil {
		t.Fatal(err)
	}
	if err := d.Finish(); err == nil {
		t.Fatal("expected LeftoverDataError")
	}
}
