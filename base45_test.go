package alfa

import (
	"bytes"
	"errors"
	"testing"
)

func TestBase45_RFCVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AB", "BB8"},
		{"Hello!!", "%69 VD92EX0"},
		{"base-45", "UJCLQE7W581"},
		{"ietf!", "QED8WEX0"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Base45.EncodeToString([]byte(tt.in))
			if got != tt.want {
				t.Errorf("EncodeToString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			back, err := Base45.DecodeString(tt.want)
			if err != nil {
				t.Fatalf("DecodeString(%q) error: %v", tt.want, err)
			}
			if string(back) != tt.in {
				t.Errorf("DecodeString(%q) = %q, want %q", tt.want, back, tt.in)
			}
		})
	}
}

func TestBase45_RoundTripAllBytes(t *testing.T) {
	data := make([]byte, 511)
	for i := range data {
		data[i] = byte(i * 7)
	}
	for n := 0; n <= len(data); n += 37 {
		back, err := Base45.DecodeString(Base45.EncodeToString(data[:n]))
		if err != nil {
			t.Fatalf("len %d: %v", n, err)
		}
		if !bytes.Equal(back, data[:n]) {
			t.Fatalf("len %d: round trip mismatch", n)
		}
	}
}

func TestBase45_DecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"dangling character", "BB8A", 4},
		{"lower case", "bb8", 0},
		{"outside alphabet", "BB#", 2},
		{"outside alphabet in second group", "BB8A#", 4},
		{"group over 65535", "GGW", 0},
		{"tail over 255", "BB8::", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Base45.DecodeString(tt.in)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("DecodeString(%q) error = %v, want ErrFormat", tt.in, err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) || fe.Codec != "base45" {
				t.Fatalf("error = %#v, want *FormatError from base45", err)
			}
			if fe.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", fe.Offset, tt.offset)
			}
		})
	}
}

func TestBase45_Name(t *testing.T) {
	if Base45.Name() != "base45" {
		t.Errorf("Name() = %q", Base45.Name())
	}
}
