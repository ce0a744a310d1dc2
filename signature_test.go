package dbuscodec

import "testing"

func TestParseSignature(t *testing.T) {
	for _, s := range []string{"", "i", "s", "(sd)", "a{sv}", "a(iiay)", "(sa(iiay)ss)"} {
		if _, err := ParseSignature(s); err != nil {
			t.Errorf("ParseSignature(%q): %v", s, err)
		}
	}
}

func TestParseSignatureInvalid(t *testing.T) {
	for _, s := range []string{"(", ")", "a{s", "{sv}", "z"} {
		if _, err := ParseSignature(s); err == nil {
			t.Errorf("ParseSignature(%q): expected error, got nil", s)
		}
	}
}

func TestParseSignatureTooLong(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'y'
	}
	if _, err := ParseSignature(string(long)); err == nil {
		t.Fatal("expected error for signature over 255 bytes")
	}
}

func TestParseSignatureMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on malformed signature")
		}
	}()
	ParseSignatureMust("(")
}

func TestSignatureEmptyAndString(t *testing.T) {
	var zero Signature
	if !zero.Empty() {
		t.Fatal("zero Signature should be empty")
	}
	sig := ParseSignatureMust("a{sv}")
	if sig.Empty() {
		t.Fatal("non-empty signature reported Empty")
	}
	if sig.String() != "a{sv}" {
		t.Fatalf("String() = %q", sig.String())
	}
}
