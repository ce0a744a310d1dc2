package wireenc

import "testing"

func TestAlign(t *testing.T) {
	tests := []struct {
		ix, a, want int
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{9, 8, 16},
		{3, 1, 3},
	}
	for _, tt := range tests {
		if got := align(tt.ix, tt.a); got != tt.want {
			t.Errorf("align(%d, %d) = %d, want %d", tt.ix, tt.a, got, tt.want)
		}
	}
}

func TestAlignPanicsOnNonPowerOfTwo(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two alignment")
		}
	}()
	align(0, 3)
}
