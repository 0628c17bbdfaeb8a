package alfa

import (
	"bytes"
	"errors"
	"testing"
)

func TestFeatures_SortedUnique(t *testing.T) {
	var fs Features
	mustSet(t, &fs, TagVisaType, []byte{0x01})
	mustSet(t, &fs, TagMRZ, []byte{0xAA})
	mustSet(t, &fs, 0x42, []byte{0x42})
	mustSet(t, &fs, TagNumberOfEntries, []byte{0x02})
	mustSet(t, &fs, TagMRZ, []byte{0xBB})

	var tags []Tag
	for _, f := range fs.All() {
		tags = append(tags, f.Tag)
	}
	want := []Tag{TagMRZ, TagNumberOfEntries, TagVisaType, 0x42}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}

	v, ok := fs.Get(TagMRZ)
	if !ok || !bytes.Equal(v, []byte{0xBB}) {
		t.Errorf("Get(TagMRZ) = %x, %v", v, ok)
	}

	fs.Delete(TagNumberOfEntries)
	if fs.Has(TagNumberOfEntries) || fs.Len() != 3 {
		t.Errorf("Delete left %d features", fs.Len())
	}
}

func TestFeatures_ValuesAreCopied(t *testing.T) {
	var fs Features
	value := []byte{1, 2, 3}
	mustSet(t, &fs, 0x10, value)
	value[0] = 9

	got, _ := fs.Get(0x10)
	if got[0] != 1 {
		t.Error("Set should copy its input")
	}
	got[1] = 9
	again, _ := fs.Get(0x10)
	if again[1] != 2 {
		t.Error("Get should return a copy")
	}

	clone := fs.Clone()
	mustSet(t, &clone, 0x10, []byte{7})
	orig, _ := fs.Get(0x10)
	if orig[0] != 1 {
		t.Error("Clone should be deep")
	}
}

func TestFeatures_RejectsSignatureMarker(t *testing.T) {
	var fs Features
	if err := fs.Set(0xFF, []byte{1}); !errors.Is(err, ErrRange) {
		t.Errorf("Set(0xFF) error = %v, want ErrRange", err)
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	var fs Features
	mustSet(t, &fs, TagMRZ, bytes.Repeat([]byte{0x5A}, 48))
	mustSet(t, &fs, TagDurationOfStay, []byte{4, 0, 0})
	mustSet(t, &fs, 0x30, bytes.Repeat([]byte{0x01}, 200))
	mustSet(t, &fs, 0x31, bytes.Repeat([]byte{0x02}, 300))

	data := EncodeMessage(fs)

	// 0x30 uses the 0x81 form, 0x31 the 0x82 form
	if !bytes.Contains(data, []byte{0x30, 0x81, 0xC8}) {
		t.Error("missing 0x81 length form")
	}
	if !bytes.Contains(data, []byte{0x31, 0x82, 0x01, 0x2C}) {
		t.Error("missing 0x82 length form")
	}

	back, err := DecodeMessage(data)
	if err != nil {
		t.Fatalf("DecodeMessage() error: %v", err)
	}
	if !bytes.Equal(EncodeMessage(back), data) {
		t.Error("round trip changed the message zone")
	}
}

func TestDecodeMessage_AcceptsUnsortedInput(t *testing.T) {
	fs, err := DecodeMessage([]byte{0x06, 0x01, 0x01, 0x02, 0x01, 0xAA})
	if err != nil {
		t.Fatal(err)
	}
	if got := EncodeMessage(fs); !bytes.Equal(got, []byte{0x02, 0x01, 0xAA, 0x06, 0x01, 0x01}) {
		t.Errorf("EncodeMessage = %x", got)
	}
}

func TestDecodeMessage_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		target error
	}{
		{"value past end", []byte{0x02, 0x05, 0x01, 0x02}, ErrTruncated},
		{"missing length", []byte{0x02}, ErrTruncated},
		{"long length past end", []byte{0x02, 0x81, 0x90, 0x00}, ErrTruncated},
		{"duplicate tag", []byte{0x03, 0x01, 0x01, 0x03, 0x01, 0x02}, ErrDuplicateFeature},
		{"signature marker", []byte{0xFF, 0x01, 0x00}, ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage(tt.data)
			if !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}

	_, err := DecodeMessage([]byte{0x03, 0x01, 0x01, 0x03, 0x01, 0x02})
	var de *DuplicateFeatureError
	if !errors.As(err, &de) || de.Tag != TagNumberOfEntries {
		t.Errorf("DuplicateFeatureError = %#v", err)
	}
}

func TestVisaType(t *testing.T) {
	tests := []struct {
		in      string
		encoded []byte
		decoded string
	}{
		{"1", []byte{0x01}, "1"},
		{"1A2B", []byte{0x1A, 0x2B}, "1A2B"},
		{"1a2b", []byte{0x1A, 0x2B}, "1A2B"},
		{"ABCDEF12", []byte{0xAB, 0xCD, 0xEF, 0x12}, "ABCDEF12"},
		{"00000000", []byte{0x00}, "0"},
		{"0", []byte{0x00}, "0"},
		{"000100", []byte{0x01, 0x00}, "100"},
		{"0A", []byte{0x0A}, "A"},
		{"01", []byte{0x01}, "1"},
		{"00", []byte{0x00}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			enc, err := EncodeVisaType(tt.in)
			if err != nil {
				t.Fatalf("EncodeVisaType(%q) error: %v", tt.in, err)
			}
			if !bytes.Equal(enc, tt.encoded) {
				t.Errorf("EncodeVisaType(%q) = %x, want %x", tt.in, enc, tt.encoded)
			}
			dec, err := DecodeVisaType(enc)
			if err != nil {
				t.Fatal(err)
			}
			if dec != tt.decoded {
				t.Errorf("DecodeVisaType(%x) = %q, want %q", enc, dec, tt.decoded)
			}
		})
	}
}

func TestVisaType_Errors(t *testing.T) {
	for _, in := range []string{"", "123456789", "XYZ"} {
		if _, err := EncodeVisaType(in); !errors.Is(err, ErrRange) {
			t.Errorf("EncodeVisaType(%q) error = %v, want ErrRange", in, err)
		}
	}
	for _, in := range [][]byte{nil, {1, 2, 3, 4, 5}} {
		if _, err := DecodeVisaType(in); !errors.Is(err, ErrFormat) {
			t.Errorf("DecodeVisaType(%x) error = %v, want ErrFormat", in, err)
		}
	}
}

func TestDurationOfStay(t *testing.T) {
	ok := DurationOfStay{Days: 4}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate(%+v) = %v", ok, err)
	}
	back, err := decodeDurationOfStay(ok.bytes())
	if err != nil || back != ok {
		t.Errorf("decode = %+v, %v", back, err)
	}

	for _, bad := range []DurationOfStay{{Days: 255}, {Months: -1}, {Years: 1000}} {
		var re *RangeError
		if err := bad.Validate(); !errors.As(err, &re) || re.Field != "durationOfStay" {
			t.Errorf("Validate(%+v) = %v, want durationOfStay *RangeError", bad, err)
		}
	}

	if _, err := decodeDurationOfStay([]byte{255, 0, 0}); !errors.Is(err, ErrRange) {
		t.Errorf("decode 255 days error = %v, want ErrRange", err)
	}
	if _, err := decodeDurationOfStay([]byte{1, 0}); !errors.Is(err, ErrFormat) {
		t.Errorf("decode 2 bytes error = %v, want ErrFormat", err)
	}
}

func TestMRZFeature_RoundTrip(t *testing.T) {
	m := MRZ{Line1: sampleLine1, Line2: sampleLine2}
	packed, err := EncodeMRZFeature(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 48 {
		t.Errorf("packed length = %d, want 48", len(packed))
	}
	text, err := DecodeMRZFeature(packed)
	if err != nil {
		t.Fatal(err)
	}
	if text != m.Text() {
		t.Errorf("DecodeMRZFeature = %q, want %q", text, m.Text())
	}

	if _, err := DecodeMRZFeature(packed[:46]); !errors.Is(err, ErrFormat) {
		t.Errorf("short feature error = %v, want ErrFormat", err)
	}
}

func mustSet(t *testing.T, fs *Features, tag Tag, value []byte) {
	t.Helper()
	if err := fs.Set(tag, value); err != nil {
		t.Fatalf("Set(%s): %v", tag, err)
	}
}
