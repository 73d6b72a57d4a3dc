package services

import (
	"image/color"
	"testing"
)

func TestComputeInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Budi Santoso", "BS"},
		{"single word", "Budi", "B"},
		{"three words uses first and last", "Budi Agus Santoso", "BS"},
		{"lowercase input", "siti rahma", "SR"},
		{"extra whitespace", "  Budi   Santoso  ", "BS"},
		{"empty", "", "?"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := computeInitials(tc.in); got != tc.want {
				t.Errorf("computeInitials(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPickColorDeterministic(t *testing.T) {
	t.Parallel()
	as := &avatarService{bgColors: []color.NRGBA{
		{R: 0x01}, {G: 0x01}, {B: 0x01}, {A: 0x01},
	}}

	first := as.pickColor("Budi Santoso")
	second := as.pickColor("Budi Santoso")
	if first != second {
		t.Error("same name produced different colors")
	}

	// Case differences must not change the pick.
	if as.pickColor("budi santoso") != first {
		t.Error("color pick is case sensitive")
	}
}
