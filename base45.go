package alfa

import (
	"strings"
)

const base45Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// base45Values maps an alphabet byte to its value, -1 when outside the alphabet.
var base45Values = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(base45Alphabet); i++ {
		t[base45Alphabet[i]] = int8(i)
	}
	return t
}()

// Base45 is the RFC 9285 transport encoding used for seal barcodes.
var Base45 TextCodec = base45Codec{}

type base45Codec struct{}

func (base45Codec) Name() string { return "base45" }

// EncodeToString maps every 2 bytes to 3 characters and a trailing odd byte to 2.
func (base45Codec) EncodeToString(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data)/2*3 + 2)

	i := 0
	for ; i+1 < len(data); i += 2 {
		n := int(data[i])<<8 | int(data[i+1])
		sb.WriteByte(base45Alphabet[n%45])
		sb.WriteByte(base45Alphabet[(n/45)%45])
		sb.WriteByte(base45Alphabet[n/2025])
	}
	if i < len(data) {
		n := int(data[i])
		sb.WriteByte(base45Alphabet[n%45])
		sb.WriteByte(base45Alphabet[n/45])
	}
	return sb.String()
}

// DecodeString reverses EncodeToString.
func (base45Codec) DecodeString(text string) ([]byte, error) {
	if len(text)%3 == 1 {
		return nil, newFormatError("base45", len(text), "length leaves a dangling character")
	}

	out := make([]byte, 0, len(text)/3*2+1)
	for i := 0; i < len(text); i += 3 {
		end := min(i+3, len(text))
		n := 0
		mul := 1
		for j := i; j < end; j++ {
			v := base45Values[text[j]]
			if v < 0 {
				return nil, newFormatError("base45", j, "character outside alphabet")
			}
			n += int(v) * mul
			mul *= 45
		}

		if end-i == 3 {
			if n > 0xFFFF {
				return nil, newFormatError("base45", i, "group value exceeds 65535")
			}
			out = append(out, byte(n>>8), byte(n))
			continue
		}
		if n > 0xFF {
			return nil, newFormatError("base45", i, "tail value exceeds 255")
		}
		out = append(out, byte(n))
	}
	return out, nil
}
