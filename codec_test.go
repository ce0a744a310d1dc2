package dbuscodec

import (
	"reflect"
	"testing"
)

func roundTrip(t *testing.T, v, dest any, policy SerializerPolicy) {
	t.Helper()
	msg, err := Marshal(v, policy)
	if err != nil {
		t.Fatalf("Marshal(%v): %v", v, err)
	}
	if err := Unmarshal(msg.Data, msg.Signature, dest, policy); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
}

func TestMarshalScalar(t *testing.T) {
	var got int32
	roundTrip(t, int32(37), &got, nil)
	if got != 37 {
		t.Fatalf("got %d, want 37", got)
	}
}

type simpleStruct struct {
	S string
	D float64
}

func TestMarshalStronglyTypedStruct(t *testing.T) {
	in := simpleStruct{S: "hi", D: 2.5}
	var out simpleStruct
	roundTrip(t, in, &out, StronglyTypedPolicy)
	if in != out {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

type nestedStruct struct {
	Name  string
	D     float64
	Inner simpleStruct
}

func TestMarshalNestedStruct(t *testing.T) {
	in := nestedStruct{Name: "a", D: 1.25, Inner: simpleStruct{S: "b", D: 3}}
	var out nestedStruct
	roundTrip(t, in, &out, StronglyTypedPolicy)
	if in != out {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestMarshalNilPointerIsUnit(t *testing.T) {
	var in *string
	msg, err := Marshal(in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Signature.String() != "()" {
		t.Fatalf("signature = %q, want %q", msg.Signature.String(), "()")
	}
	var out *string
	if err := Unmarshal(msg.Data, msg.Signature, &out, nil); err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Fatalf("got %v, want nil", out)
	}
}

func TestMarshalNonNilPointer(t *testing.T) {
	s := "hello"
	var out *string
	roundTrip(t, &s, &out, nil)
	if out == nil || *out != s {
		t.Fatalf("got %v, want %q", out, s)
	}
}

func TestMarshalDictStyleStruct(t *testing.T) {
	type props struct {
		Name string
		Age  int32
	}
	in := props{Name: "x", Age: 9}
	var out props
	roundTrip(t, in, &out, DefaultPolicy)
	if in != out {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestMarshalSliceAndMap(t *testing.T) {
	in := []string{"a", "b", "c"}
	var out []string
	roundTrip(t, in, &out, nil)
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("got %v, want %v", out, in)
	}

	m := map[string]uint32{"a": 1, "b": 2}
	var mOut map[string]uint32
	roundTrip(t, m, &mOut, nil)
	if !reflect.DeepEqual(m, mOut) {
		t.Fatalf("got %v, want %v", mOut, m)
	}
}

func TestMarshalEmptySlice(t *testing.T) {
	in := []simpleStruct{}
	var out []simpleStruct
	roundTrip(t, in, &out, StronglyTypedPolicy)
	if len(out) != 0 {
		t.Fatalf("got %v, want empty", out)
	}
}

func TestMarshalVariantInterface(t *testing.T) {
	in := []interface{}{"a", int32(5), true}
	var out []interface{}
	roundTrip(t, in, &out, nil)
	want := []interface{}{"a", int32(5), true}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestUnmarshalRejectsNonPointer(t *testing.T) {
	var x int32
	err := Unmarshal(nil, ParseSignatureMust("i"), x, nil)
	if err == nil {
		t.Fatal("expected error for non-pointer destination")
	}
}

func TestMarshalObjectPath(t *testing.T) {
	in := ObjectPath("/com/example/Object")
	var out ObjectPath
	roundTrip(t, in, &out, nil)
	if out != in {
		t.Fatalf("got %q, want %q", out, in)
	}
}

func TestMarshalChar(t *testing.T) {
	in := Char('λ')
	var out Char
	roundTrip(t, in, &out, nil)
	if out != in {
		t.Fatalf("got %q, want %q", out, in)
	}
}
