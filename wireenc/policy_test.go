package wireenc

import "testing"

func TestPerNamePolicy(t *testing.T) {
	p := PerNamePolicy{
		Styles:   map[string]StructStyle{"Header": StronglyTyped},
		Fallback: DefaultPolicy,
	}
	if got := p.QueryStructName("Header"); got != StronglyTyped {
		t.Errorf("Header: got %v, want StronglyTyped", got)
	}
	if got := p.QueryStructName("Properties"); got != Dict {
		t.Errorf("Properties: got %v, want Dict", got)
	}
}

func TestBuiltinPolicies(t *testing.T) {
	if DefaultPolicy.QueryStructName("Anything") != Dict {
		t.Error("DefaultPolicy should select Dict")
	}
	if StronglyTypedPolicy.QueryStructName("Anything") != StronglyTyped {
		t.Error("StronglyTypedPolicy should select StronglyTyped")
	}
}
