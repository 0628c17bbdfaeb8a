package alfa

import "fmt"

// Seal is a visible digital seal: header, message and signature zones.
type Seal struct {
	Header    Header
	Features  Features
	Signature []byte
}

// HeaderZone serializes the header.
func (s *Seal) HeaderZone() ([]byte, error) {
	return EncodeHeader(s.Header)
}

// MessageZone serializes the features.
func (s *Seal) MessageZone() []byte {
	return EncodeMessage(s.Features)
}

// SignatureZone frames the signature. It is empty when unsigned.
func (s *Seal) SignatureZone() []byte {
	return EncodeSignature(s.Signature)
}

// Unsigned returns header ++ message, the bytes a signer signs.
func (s *Seal) Unsigned() ([]byte, error) {
	header, err := s.HeaderZone()
	if err != nil {
		return nil, err
	}
	return append(header, s.MessageZone()...), nil
}

// Encode returns header ++ message ++ signature.
func (s *Seal) Encode() ([]byte, error) {
	unsigned, err := s.Unsigned()
	if err != nil {
		return nil, err
	}
	return append(unsigned, s.SignatureZone()...), nil
}

// Clone returns a deep copy.
func (s *Seal) Clone() Seal {
	return Seal{
		Header:    s.Header,
		Features:  s.Features.Clone(),
		Signature: append([]byte(nil), s.Signature...),
	}
}

// DecodeSeal parses a complete seal. The message zone runs until the 0xFF
// signature marker or the end of data.
func DecodeSeal(data []byte) (Seal, error) {
	header, n, err := DecodeHeader(data)
	if err != nil {
		return Seal{}, fmt.Errorf("header zone: %w", err)
	}

	rest := data[n:]
	end, err := messageEnd(rest)
	if err != nil {
		return Seal{}, fmt.Errorf("message zone: %w", err)
	}

	features, err := DecodeMessage(rest[:end])
	if err != nil {
		return Seal{}, fmt.Errorf("message zone: %w", err)
	}

	sig, err := DecodeSignature(rest[end:])
	if err != nil {
		return Seal{}, fmt.Errorf("signature zone: %w", err)
	}

	return Seal{Header: header, Features: features, Signature: sig}, nil
}

// EncodeSignature frames sig as 0xFF, length, bytes. An empty signature
// yields an empty zone.
func EncodeSignature(sig []byte) []byte {
	if len(sig) == 0 {
		return nil
	}
	out := make([]byte, 0, len(sig)+4)
	out = append(out, byte(tagSignature))
	out = appendBERLength(out, len(sig))
	return append(out, sig...)
}

// DecodeSignature parses a signature zone, which must span all of data.
func DecodeSignature(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if Tag(data[0]) != tagSignature {
		return nil, newFormatError("signature", 0, "missing 0xFF marker")
	}
	n, size, err := readBERLength("signature", data, 1)
	if err != nil {
		return nil, err
	}
	start := 1 + size
	if start+n > len(data) {
		return nil, newTruncatedError("signature", start, n, len(data)-start)
	}
	if start+n != len(data) {
		return nil, newFormatError("signature", start+n, "trailing bytes after signature")
	}
	return append([]byte(nil), data[start:]...), nil
}

// messageEnd walks TLV framing to find where the message zone stops.
func messageEnd(data []byte) (int, error) {
	off := 0
	for off < len(data) {
		if Tag(data[off]) == tagSignature {
			return off, nil
		}
		n, size, err := readBERLength("message", data, off+1)
		if err != nil {
			return 0, err
		}
		start := off + 1 + size
		if start+n > len(data) {
			return 0, newTruncatedError("message", start, n, len(data)-start)
		}
		off = start + n
	}
	return off, nil
}
