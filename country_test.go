package alfa

import "testing"

func TestIsCountryCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"DEU", true},
		{"FRA", true},
		{"USA", true},
		{"UTO", true},
		{"EUE", true},
		{"RKS", true},
		{"AAB", true},
		{"QMA", true},
		{"QZZ", true},
		{"XXA", true},
		{"ZZZ", true},
		{"deu", false},
		{"DE", false},
		{"DEUT", false},
		{"D<<", false},
		{"JJJ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsCountryCode(tt.code); got != tt.want {
				t.Errorf("IsCountryCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
