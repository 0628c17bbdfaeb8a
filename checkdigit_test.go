package alfa

import (
	"errors"
	"testing"
)

func TestCheckDigit_ICAOVectors(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"D23145890", 7},
		{"740812", 2},
		{"120415", 9},
		{"L898902C3", 6},
		{"T32069231", 5},
		{"<<<<<<<<<", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CheckDigit(tt.in)
			if err != nil {
				t.Fatalf("CheckDigit(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("CheckDigit(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckDigit_SpaceCountsAsFiller(t *testing.T) {
	a, _ := CheckDigit("AB<<12")
	b, _ := CheckDigit("AB  12")
	if a != b {
		t.Errorf("space and '<' differ: %d vs %d", a, b)
	}
}

func TestCheckDigit_RejectsLowerCase(t *testing.T) {
	_, err := CheckDigit("l898902c3")
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want ErrFormat", err)
	}
}

func TestVerifyCheckDigit(t *testing.T) {
	if err := VerifyCheckDigit("number", "L898902C3", '6'); err != nil {
		t.Errorf("valid digit rejected: %v", err)
	}

	err := VerifyCheckDigit("number", "L898902C3", '4')
	var ce *ChecksumError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ChecksumError", err)
	}
	if ce.Field != "number" || ce.Input != "L898902C3" || ce.Expected != 6 || ce.Actual != "4" {
		t.Errorf("ChecksumError = %+v", ce)
	}
	if !errors.Is(err, ErrChecksum) {
		t.Error("ChecksumError should unwrap to ErrChecksum")
	}
}
