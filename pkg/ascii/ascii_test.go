package ascii

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Tristan Bissetta", "Tristan Bissetta"},
		{"accents", "José Núñez", "Jose Nunez"},
		{"grave and circumflex", "Àndré Côté", "Andre Cote"},
		{"unfoldable runes drop", "王Smith", "Smith"},
		{"control bytes drop", "a\tb\nc", "abc"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
