package alfa

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Tag identifies a message zone feature.
type Tag byte

// Visa feature tags (ICAO 9303-13, feature definition reference 0x5D).
const (
	TagMRZ               Tag = 0x02
	TagNumberOfEntries   Tag = 0x03
	TagDurationOfStay    Tag = 0x04
	TagPassportNumber    Tag = 0x05
	TagVisaType          Tag = 0x06
	TagAdditionalFeature Tag = 0x07

	// tagSignature marks the start of the signature zone and is never a feature.
	tagSignature Tag = 0xFF
)

func (t Tag) String() string {
	switch t {
	case TagMRZ:
		return "mrz"
	case TagNumberOfEntries:
		return "numberOfEntries"
	case TagDurationOfStay:
		return "durationOfStay"
	case TagPassportNumber:
		return "passportNumber"
	case TagVisaType:
		return "visaType"
	case TagAdditionalFeature:
		return "additionalFeature"
	}
	return fmt.Sprintf("0x%02X", byte(t))
}

// Feature is one TLV of the message zone. Value holds the raw bytes; tags
// this package does not know are carried through unchanged.
type Feature struct {
	Tag   Tag
	Value []byte
}

// Features is the message zone: unique tags kept in ascending order.
type Features struct {
	list []Feature
}

// Len returns the number of features.
func (fs *Features) Len() int {
	return len(fs.list)
}

// Get returns a copy of the value stored under tag.
func (fs *Features) Get(tag Tag) ([]byte, bool) {
	i, ok := fs.index(tag)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), fs.list[i].Value...), true
}

// Has reports whether tag is present.
func (fs *Features) Has(tag Tag) bool {
	_, ok := fs.index(tag)
	return ok
}

// Set stores a copy of value under tag, replacing any existing value.
func (fs *Features) Set(tag Tag, value []byte) error {
	if tag == tagSignature {
		return newRangeError("tag", "0xFF", "reserved for the signature zone")
	}
	if len(value) > maxBERLength {
		return newRangeError(tag.String(), "", "value does not fit a 3-byte length")
	}
	v := append([]byte(nil), value...)
	i, ok := fs.index(tag)
	if ok {
		fs.list[i].Value = v
		return nil
	}
	fs.list = append(fs.list, Feature{})
	copy(fs.list[i+1:], fs.list[i:])
	fs.list[i] = Feature{Tag: tag, Value: v}
	return nil
}

// Delete removes tag if present.
func (fs *Features) Delete(tag Tag) {
	if i, ok := fs.index(tag); ok {
		fs.list = append(fs.list[:i], fs.list[i+1:]...)
	}
}

// All returns a copy of every feature in ascending tag order.
func (fs *Features) All() []Feature {
	out := make([]Feature, len(fs.list))
	for i, f := range fs.list {
		out[i] = Feature{Tag: f.Tag, Value: append([]byte(nil), f.Value...)}
	}
	return out
}

// Clone returns a deep copy.
func (fs *Features) Clone() Features {
	return Features{list: fs.All()}
}

func (fs *Features) index(tag Tag) (int, bool) {
	i := sort.Search(len(fs.list), func(i int) bool { return fs.list[i].Tag >= tag })
	return i, i < len(fs.list) && fs.list[i].Tag == tag
}

// EncodeMessage serializes fs as concatenated TLVs in ascending tag order.
func EncodeMessage(fs Features) []byte {
	size := 0
	for _, f := range fs.list {
		size += 5 + len(f.Value)
	}
	out := make([]byte, 0, size)
	for _, f := range fs.list {
		out = append(out, byte(f.Tag))
		out = appendBERLength(out, len(f.Value))
		out = append(out, f.Value...)
	}
	return out
}

// DecodeMessage parses a message zone. Decoding stops at the end of data;
// callers split off the signature zone first. Tags need not arrive sorted
// but must not repeat.
func DecodeMessage(data []byte) (Features, error) {
	var fs Features
	off := 0
	for off < len(data) {
		tag := Tag(data[off])
		if tag == tagSignature {
			return Features{}, newFormatError("message", off, "signature marker inside message zone")
		}
		n, size, err := readBERLength("message", data, off+1)
		if err != nil {
			return Features{}, err
		}
		start := off + 1 + size
		if start+n > len(data) {
			return Features{}, newTruncatedError("message", start, n, len(data)-start)
		}
		if fs.Has(tag) {
			return Features{}, &DuplicateFeatureError{Tag: tag}
		}
		if err := fs.Set(tag, data[start:start+n]); err != nil {
			return Features{}, err
		}
		off = start + n
	}
	return fs, nil
}

// EncodeMRZFeature packs 72 MRZ characters for feature 0x02, fillers as spaces.
func EncodeMRZFeature(m MRZ) ([]byte, error) {
	text := m.Text()
	if len(text) != MRZLength {
		return nil, newRangeError("mrz", text, "must be "+strconv.Itoa(MRZLength)+" characters")
	}
	return EncodeC40(strings.ReplaceAll(text, "<", " "))
}

// DecodeMRZFeature unpacks feature 0x02 back into MRZ text with '<' fillers.
func DecodeMRZFeature(value []byte) (string, error) {
	text, err := DecodeC40(value)
	if err != nil {
		return "", fmt.Errorf("mrz feature: %w", err)
	}
	text = strings.ReplaceAll(text, " ", "<")
	if len(text) != MRZLength {
		return "", newFormatError("mrz", -1, "feature carries "+strconv.Itoa(len(text))+" characters")
	}
	return text, nil
}

// DurationOfStay is feature 0x04.
type DurationOfStay struct {
	Days   int
	Months int
	Years  int
}

// IsZero reports whether no duration is set.
func (d DurationOfStay) IsZero() bool {
	return d == DurationOfStay{}
}

// Validate checks each component fits one byte below 0xFF.
func (d DurationOfStay) Validate() error {
	for _, c := range []struct {
		name string
		v    int
	}{{"days", d.Days}, {"months", d.Months}, {"years", d.Years}} {
		if c.v < 0 || c.v > 254 {
			return newRangeError("durationOfStay", strconv.Itoa(c.v), c.name+" must be in 0-254")
		}
	}
	return nil
}

func (d DurationOfStay) bytes() []byte {
	return []byte{byte(d.Days), byte(d.Months), byte(d.Years)}
}

func decodeDurationOfStay(value []byte) (DurationOfStay, error) {
	if len(value) != 3 {
		return DurationOfStay{}, newFormatError("durationOfStay", -1, "expected 3 bytes, got "+strconv.Itoa(len(value)))
	}
	d := DurationOfStay{Days: int(value[0]), Months: int(value[1]), Years: int(value[2])}
	return d, d.Validate()
}

func decodeNumberOfEntries(value []byte) (int, error) {
	if len(value) != 1 {
		return 0, newFormatError("numberOfEntries", -1, "expected 1 byte, got "+strconv.Itoa(len(value)))
	}
	return int(value[0]), nil
}

// EncodeVisaType packs a visa type code of up to 8 hex characters. The
// code is left-padded to 4 bytes and leading zero bytes are dropped,
// keeping at least one.
func EncodeVisaType(code string) ([]byte, error) {
	code = strings.ToUpper(code)
	if code == "" || len(code) > 8 {
		return nil, newRangeError("visaTypeCode", code, "must be 1-8 hex characters")
	}
	if !isHex(code) {
		return nil, newRangeError("visaTypeCode", code, "must be hex")
	}
	b, _ := hex.DecodeString(strings.Repeat("0", 8-len(code)) + code)
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	return b, nil
}

// DecodeVisaType renders feature 0x06 as upper-case hex without leading
// zero digits, keeping at least one.
func DecodeVisaType(value []byte) (string, error) {
	if len(value) == 0 || len(value) > 4 {
		return "", newFormatError("visaType", -1, "expected 1-4 bytes, got "+strconv.Itoa(len(value)))
	}
	// Leading zero nibbles carry no information in the bytes, so "0A" and
	// "A" both decode as "A".
	s := strings.TrimLeft(strings.ToUpper(hex.EncodeToString(value)), "0")
	if s == "" {
		s = "0"
	}
	return s, nil
}
