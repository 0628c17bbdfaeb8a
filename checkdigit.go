package alfa

import "fmt"

var checkDigitWeights = [3]int{7, 3, 1}

// CheckDigit computes the ICAO 9303 weighted mod-10 check digit of s.
// Digits count as themselves, A-Z as 10-35, and both '<' and space as 0.
func CheckDigit(s string) (int, error) {
	sum := 0
	for i := 0; i < len(s); i++ {
		v, ok := checkDigitValue(s[i])
		if !ok {
			return 0, newFormatError("mrz", i, fmt.Sprintf("character %q has no check digit value", s[i]))
		}
		sum += v * checkDigitWeights[i%3]
	}
	return sum % 10, nil
}

// VerifyCheckDigit recomputes the digit over input and compares it to actual.
// A mismatch is returned as a *ChecksumError naming field.
func VerifyCheckDigit(field, input string, actual byte) error {
	expected, err := CheckDigit(input)
	if err != nil {
		return err
	}
	if actual != byte('0'+expected) {
		return &ChecksumError{
			Field:    field,
			Input:    input,
			Expected: expected,
			Actual:   string(actual),
		}
	}
	return nil
}

func checkDigitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	case c == '<' || c == ' ':
		return 0, true
	}
	return 0, false
}
