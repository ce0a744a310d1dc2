package wireenc

import "testing"

func TestBoolRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		b := NewBuilder()
		if err := boolCodec.EncodeTo(b, v); err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		data := b.Complete()
		got, err := boolCodec.DecodeFrom(&dataCursor{buf: data})
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if got != v {
			t.Errorf("bool round trip: got %v, want %v", got, v)
		}
	}
}

func TestBoolFalseIsZero(t *testing.T) {
	b := NewBuilder()
	if err := boolCodec.EncodeTo(b, false); err != nil {
		t.Fatal(err)
	}
	data := b.Complete()
	for _, by := range data {
		if by != 0 {
			t.Fatalf("encoding false produced non-zero bytes: %v", data)
		}
	}
}

func TestInvalidBoolValue(t *testing.T) {
	cur := &dataCursor{buf: []byte{2, 0, 0, 0}}
	_, err := boolCodec.DecodeFrom(cur)
	if _, ok := err.(InvalidBoolValueError); !ok {
		t.Fatalf("got %v, want InvalidBoolValueError", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	b := NewBuilder()
	sc := stringCodec{sig: 's'}
	if err := sc.EncodeTo(b, "hello"); err != nil {
		t.Fatal(err)
	}
	data := b.Complete()
	got, err := sc.DecodeFrom(&dataCursor{buf: data})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestStringBadUTF8(t *testing.T) {
	sc := stringCodec{sig: 's'}
	if err := sc.EncodeTo(NewBuilder(), "\xff\xfe"); err == nil {
		t.Fatal("expected StringConversionError for invalid utf8")
	}
}
