package alfa

// appendBERLength appends n in DER definite form: one byte below 0x80,
// otherwise 0x81-0x83 followed by the big-endian length.
func appendBERLength(out []byte, n int) []byte {
	switch {
	case n < 0x80:
		return append(out, byte(n))
	case n <= 0xFF:
		return append(out, 0x81, byte(n))
	case n <= 0xFFFF:
		return append(out, 0x82, byte(n>>8), byte(n))
	default:
		return append(out, 0x83, byte(n>>16), byte(n>>8), byte(n))
	}
}

// maxBERLength is the largest value appendBERLength frames.
const maxBERLength = 0xFFFFFF

// readBERLength reads a definite length starting at data[off] and returns
// the length and the number of bytes its encoding occupied.
func readBERLength(zone string, data []byte, off int) (int, int, error) {
	if off >= len(data) {
		return 0, 0, newTruncatedError(zone, off, 1, 0)
	}

	first := data[off]
	if first < 0x80 {
		return int(first), 1, nil
	}

	size := int(first & 0x7F)
	if size == 0 || size > 3 {
		return 0, 0, newFormatError(zone, off, "unsupported length form")
	}
	if off+1+size > len(data) {
		return 0, 0, newTruncatedError(zone, off+1, size, len(data)-off-1)
	}

	n := 0
	for _, b := range data[off+1 : off+1+size] {
		n = n<<8 | int(b)
	}
	return n, 1 + size, nil
}
