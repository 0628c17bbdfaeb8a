package alfa

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SealVersion is the header version byte.
type SealVersion byte

const (
	// SealVersion3 fixes the certificate reference at five hex characters.
	SealVersion3 SealVersion = 0x02

	// SealVersion4 prefixes the certificate reference with its length.
	SealVersion4 SealVersion = 0x03
)

func (v SealVersion) String() string {
	switch v {
	case SealVersion3:
		return "3"
	case SealVersion4:
		return "4"
	default:
		return fmt.Sprintf("unknown(0x%02X)", byte(v))
	}
}

const (
	sealMagic = 0xDC

	// VisaFeatureDefinition is the feature definition reference of a visa seal.
	VisaFeatureDefinition = 0x5D

	// VisaTypeCategory is the document type category of a visa seal.
	VisaTypeCategory = 0x01

	certReferenceV3Length = 5
	identifierCodeLength  = 4
)

// Header is the seal header zone.
type Header struct {
	Version           SealVersion
	AuthorityCode     string // Issuing country, mirrors the document authority
	IdentifierCode    string // Signer identifier, 4 characters
	CertReference     string // Certificate reference as upper-case hex
	IssueDate         time.Time
	SignatureDate     time.Time
	FeatureDefinition byte
	TypeCategory      byte
}

// EncodeHeader serializes h.
func EncodeHeader(h Header) ([]byte, error) {
	if h.Version != SealVersion3 && h.Version != SealVersion4 {
		return nil, newRangeError("sealVersion", h.Version.String(), "unsupported header version")
	}
	if len(h.AuthorityCode) > 3 {
		return nil, newRangeError("authorityCode", h.AuthorityCode, "longer than 3 characters")
	}
	if len(h.IdentifierCode) != identifierCodeLength {
		return nil, newRangeError("identifierCode", h.IdentifierCode, "must be 4 characters")
	}

	country, err := EncodeC40(padC40(h.AuthorityCode, 3))
	if err != nil {
		return nil, fmt.Errorf("authority code: %w", err)
	}

	signer, err := signerField(h)
	if err != nil {
		return nil, err
	}
	signerBytes, err := EncodeC40(signer)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	issue, err := encodeSealDate("issueDate", h.IssueDate)
	if err != nil {
		return nil, err
	}
	signed, err := encodeSealDate("signatureDate", h.SignatureDate)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+len(country)+len(signerBytes)+8)
	out = append(out, sealMagic, byte(h.Version))
	out = append(out, country...)
	out = append(out, signerBytes...)
	out = append(out, issue...)
	out = append(out, signed...)
	out = append(out, h.FeatureDefinition, h.TypeCategory)
	return out, nil
}

// DecodeHeader parses a header zone at the start of data and returns it
// with the number of bytes it occupied.
func DecodeHeader(data []byte) (Header, int, error) {
	const zone = "header"
	if len(data) < 4 {
		return Header{}, 0, newTruncatedError(zone, 0, 4, len(data))
	}
	if data[0] != sealMagic {
		return Header{}, 0, newFormatError(zone, 0, "missing 0xDC magic constant")
	}

	h := Header{Version: SealVersion(data[1])}
	if h.Version != SealVersion3 && h.Version != SealVersion4 {
		return Header{}, 0, newFormatError(zone, 1, "unsupported header version "+h.Version.String())
	}

	country, err := DecodeC40(data[2:4])
	if err != nil {
		return Header{}, 0, fmt.Errorf("authority code: %w", err)
	}
	h.AuthorityCode = strings.TrimRight(country, " ")

	off := 4
	var signer string
	switch h.Version {
	case SealVersion3:
		n := c40Size(identifierCodeLength + certReferenceV3Length)
		if off+n > len(data) {
			return Header{}, 0, newTruncatedError(zone, off, n, len(data)-off)
		}
		if signer, err = DecodeC40(data[off : off+n]); err != nil {
			return Header{}, 0, fmt.Errorf("signer: %w", err)
		}
		off += n
		if len(signer) != identifierCodeLength+certReferenceV3Length {
			return Header{}, 0, newFormatError(zone, off, "signer field has wrong length")
		}
		h.IdentifierCode = signer[:identifierCodeLength]
		h.CertReference = signer[identifierCodeLength:]

	case SealVersion4:
		if off+4 > len(data) {
			return Header{}, 0, newTruncatedError(zone, off, 4, len(data)-off)
		}
		prefix, err := DecodeC40(data[off : off+4])
		if err != nil || len(prefix) != 6 {
			return Header{}, 0, newFormatError(zone, off, "signer prefix is not six C40 characters")
		}
		refLen, err := strconv.ParseUint(prefix[4:6], 16, 8)
		if err != nil {
			return Header{}, 0, newFormatError(zone, off, "certificate reference length is not hex")
		}
		n := c40Size(6 + int(refLen))
		if off+n > len(data) {
			return Header{}, 0, newTruncatedError(zone, off, n, len(data)-off)
		}
		if signer, err = DecodeC40(data[off : off+n]); err != nil {
			return Header{}, 0, fmt.Errorf("signer: %w", err)
		}
		off += n
		if len(signer) != 6+int(refLen) {
			return Header{}, 0, newFormatError(zone, off, "signer field has wrong length")
		}
		h.IdentifierCode = signer[:identifierCodeLength]
		h.CertReference = signer[6:]
	}
	if !isHex(h.CertReference) {
		return Header{}, 0, newFormatError(zone, off, "certificate reference is not hex")
	}

	if off+8 > len(data) {
		return Header{}, 0, newTruncatedError(zone, off, 8, len(data)-off)
	}
	if h.IssueDate, err = decodeSealDate(data[off : off+3]); err != nil {
		return Header{}, 0, err
	}
	if h.SignatureDate, err = decodeSealDate(data[off+3 : off+6]); err != nil {
		return Header{}, 0, err
	}
	h.FeatureDefinition = data[off+6]
	h.TypeCategory = data[off+7]
	return h, off + 8, nil
}

func signerField(h Header) (string, error) {
	ref := strings.ToUpper(h.CertReference)
	if !isHex(ref) {
		return "", newRangeError("certReference", h.CertReference, "must be hex")
	}
	switch h.Version {
	case SealVersion3:
		if len(ref) != certReferenceV3Length {
			return "", newRangeError("certReference", h.CertReference, "must be 5 hex characters in a version 3 header")
		}
		return h.IdentifierCode + ref, nil
	default:
		if len(ref) > 0xFF {
			return "", newRangeError("certReference", h.CertReference, "longer than 255 characters")
		}
		return fmt.Sprintf("%s%02X%s", h.IdentifierCode, len(ref), ref), nil
	}
}

// encodeSealDate packs a date as the integer MMDDYYYY in 3 big-endian bytes.
func encodeSealDate(field string, t time.Time) ([]byte, error) {
	if t.IsZero() {
		return nil, newRangeError(field, "", "is not set")
	}
	if t.Year() < 1 || t.Year() > 9999 {
		return nil, newRangeError(field, t.Format(time.DateOnly), "year outside 1-9999")
	}
	v := int(t.Month())*1000000 + t.Day()*10000 + t.Year()
	return []byte{byte(v >> 16), byte(v >> 8), byte(v)}, nil
}

func decodeSealDate(b []byte) (time.Time, error) {
	v := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	month, day, year := v/1000000, v/10000%100, v%10000
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if month < 1 || month > 12 || t.Day() != day {
		return time.Time{}, newFormatError("header", -1, fmt.Sprintf("date %08d is not MMDDYYYY", v))
	}
	return t, nil
}

// c40Size is the byte length EncodeC40 produces for n characters.
func c40Size(n int) int {
	return (n + 2) / 3 * 2
}

func padC40(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
