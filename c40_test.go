package alfa

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestEncodeC40(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UTO", "D9C5"},
		{"ABC", "59E9"},
		{"AB", "59D9"},
		{"A", "FE42"},
		{"D  ", "6ABC"},
		{"L898902C3", "9E2E4D0D2808"},
		{"UTSS044A7C", "D9C9C8A9343CFE44"},
		{"uto", "D9C5"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := EncodeC40(tt.in)
			if err != nil {
				t.Fatalf("EncodeC40(%q) error: %v", tt.in, err)
			}
			if h := strings.ToUpper(hex.EncodeToString(got)); h != tt.want {
				t.Errorf("EncodeC40(%q) = %s, want %s", tt.in, h, tt.want)
			}
		})
	}
}

func TestEncodeC40_RejectsUnsupported(t *testing.T) {
	for _, in := range []string{"A<B", "É", "a-b", "TAB\t"} {
		_, err := EncodeC40(in)
		var fe *FormatError
		if !errors.As(err, &fe) || fe.Codec != "c40" {
			t.Errorf("EncodeC40(%q) error = %v, want c40 *FormatError", in, err)
		}
	}
}

func TestC40_RoundTrip(t *testing.T) {
	inputs := []string{
		"A", "AB", "ABC", "ABCD", "ABCDE",
		"V UTOERIKSSON  ANNA MARIA",
		"0123456789 ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"l898902c3",
	}
	for _, in := range inputs {
		enc, err := EncodeC40(in)
		if err != nil {
			t.Fatalf("EncodeC40(%q): %v", in, err)
		}
		got, err := DecodeC40(enc)
		if err != nil {
			t.Fatalf("DecodeC40(%x): %v", enc, err)
		}
		if want := strings.ToUpper(in); got != want {
			t.Errorf("round trip %q = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeC40_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"odd byte count", []byte{0x59}},
		{"zero triplet", []byte{0x00, 0x00}},
		{"triplet over 64000", []byte{0xFA, 0x02}},
		{"unlatch not last", []byte{0xFE, 0x42, 0x59, 0xE9}},
		{"unlatch bad char", []byte{0xFE, 0x2E}},
		{"pad inside data", []byte{0x59, 0xD9, 0x59, 0xE9}},
		{"leading pad", []byte{0x00, 0x01}},
		{"shift2 value", mustTriplet(1, 14, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeC40(tt.in)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("DecodeC40(%x) error = %v, want ErrFormat", tt.in, err)
			}
		})
	}
}

func TestDecodeC40_DropsTrailingPad(t *testing.T) {
	got, err := DecodeC40([]byte{0x59, 0xD9})
	if err != nil {
		t.Fatal(err)
	}
	if got != "AB" {
		t.Errorf("DecodeC40 = %q, want %q", got, "AB")
	}

	// A, pad, pad
	got, err = DecodeC40(mustTriplet(14, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if got != "A" {
		t.Errorf("DecodeC40 = %q, want %q", got, "A")
	}
}

func TestDecodeC40_Empty(t *testing.T) {
	got, err := DecodeC40(nil)
	if err != nil || got != "" {
		t.Errorf("DecodeC40(nil) = %q, %v", got, err)
	}
	if !bytes.Equal(mustTriplet(14, 15, 16), []byte{0x59, 0xE9}) {
		t.Error("mustTriplet disagrees with EncodeC40")
	}
}

func mustTriplet(c1, c2, c3 int) []byte {
	return appendC40Triplet(nil, c1, c2, c3)
}
