package dbuscodec

import "testing"

func TestObjectPathValid(t *testing.T) {
	if !ObjectPath("/com/example/Object").Valid() {
		t.Fatal("expected valid path to be valid")
	}
	if ObjectPath("").Valid() {
		t.Fatal("empty path should be invalid")
	}
	if ObjectPath("/a\x00b").Valid() {
		t.Fatal("path with embedded NUL should be invalid")
	}
}
