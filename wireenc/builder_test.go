package wireenc

import (
	"bytes"
	"testing"
)

func TestBuilderPlainWrite(t *testing.T) {
	b := NewBuilder()
	b.Align(4)
	dst := b.PrepareWrite(4)
	copy(dst, []byte{1, 2, 3, 4})
	got := b.Complete()
	want := []byte{1, 2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderDefersAlignment(t *testing.T) {
	b := NewBuilder()
	// one byte, then something needing 4-byte alignment: the single byte
	// should be padded with 3 zero bytes before the aligned write.
	dst := b.PrepareWrite(1)
	dst[0] = 0xFF
	b.Align(4)
	dst2 := b.PrepareWrite(4)
	copy(dst2, []byte{1, 2, 3, 4})
	got := b.Complete()
	want := []byte{0xFF, 0, 0, 0, 1, 2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderEmptyArrayLength(t *testing.T) {
	b := NewBuilder()
	tok := b.StartLength()
	b.Align(4) // element alignment, emitted even though no elements follow
	b.FinishLength(tok)
	got := b.Complete()
	want := []byte{0, 0, 0, 0} // length = 0, no padding needed since the length field ends at offset 4
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderNonEmptyArrayLength(t *testing.T) {
	b := NewBuilder()
	tok := b.StartLength()
	b.Align(4)
	for _, v := range []int32{1, 2} {
		b.Align(4)
		dst := b.PrepareWrite(4)
		dst[0] = byte(v)
	}
	b.FinishLength(tok)
	got := b.Complete()
	want := []byte{8, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBuilderAppendData(t *testing.T) {
	inner := NewBuilder()
	inner.Align(8)
	dst := inner.PrepareWrite(8)
	copy(dst, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	outer := NewBuilder()
	outer.PrepareWrite(1) // one byte, to force padding before the 8-byte splice
	outer.AppendData(inner)
	got := outer.Complete()
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
