package alfa

import (
	"fmt"
	"strings"
)

// C40 values used by ICAO 9303-13. Shift codes other than shift1 never
// appear in encoder output; shift1 doubles as the pad value.
const (
	c40Shift1  = 0
	c40Space   = 3
	c40Unlatch = 0xFE
)

// EncodeC40 packs text three characters to two bytes.
// Input is upper-cased; only space, 0-9 and A-Z are accepted.
func EncodeC40(text string) ([]byte, error) {
	text = strings.ToUpper(text)
	values := make([]int, 0, len(text))
	for i, r := range text {
		v, ok := c40Value(r)
		if !ok {
			return nil, newFormatError("c40", i, fmt.Sprintf("unsupported character %q", r))
		}
		values = append(values, v)
	}

	out := make([]byte, 0, (len(values)+2)/3*2)
	i := 0
	for ; i+2 < len(values); i += 3 {
		out = appendC40Triplet(out, values[i], values[i+1], values[i+2])
	}

	switch len(values) - i {
	case 2:
		out = appendC40Triplet(out, values[i], values[i+1], c40Shift1)
	case 1:
		out = append(out, c40Unlatch, text[i]+1)
	}
	return out, nil
}

// DecodeC40 unpacks bytes produced by EncodeC40. Trailing pad values are dropped.
func DecodeC40(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data) / 2 * 3)

	for i := 0; i < len(data); i += 2 {
		if i+1 >= len(data) {
			return "", newFormatError("c40", i, "odd byte count")
		}
		if data[i] == c40Unlatch {
			if i+2 != len(data) {
				return "", newFormatError("c40", i, "unlatch before end of data")
			}
			r := rune(data[i+1]) - 1
			if _, ok := c40Value(r); !ok {
				return "", newFormatError("c40", i+1, "unsupported character after unlatch")
			}
			sb.WriteRune(r)
			break
		}

		u := int(data[i])<<8 | int(data[i+1])
		if u == 0 || u > 64000 {
			return "", newFormatError("c40", i, "triplet value out of range")
		}
		u--
		values := [3]int{u / 1600, (u / 40) % 40, u % 40}
		for k, v := range values {
			if v == c40Shift1 {
				// Only the final triplet may be padded, and only at its tail.
				if i+2 != len(data) || k == 0 || (k == 1 && values[2] != c40Shift1) {
					return "", newFormatError("c40", i, "unexpected shift value")
				}
				break
			}
			if v < c40Space {
				return "", newFormatError("c40", i, "unsupported shift value")
			}
			sb.WriteByte(c40Char(v))
		}
	}
	return sb.String(), nil
}

func appendC40Triplet(out []byte, c1, c2, c3 int) []byte {
	u := 1600*c1 + 40*c2 + c3 + 1
	return append(out, byte(u>>8), byte(u))
}

func c40Value(r rune) (int, bool) {
	switch {
	case r == ' ':
		return c40Space, true
	case r >= '0' && r <= '9':
		return int(r-'0') + 4, true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 14, true
	}
	return 0, false
}

func c40Char(v int) byte {
	switch {
	case v == c40Space:
		return ' '
	case v < 14:
		return byte('0' + v - 4)
	default:
		return byte('A' + v - 14)
	}
}
