package yaml

import (
	"bytes"
	"testing"

	alfa "github.com/sentamalin/alfa-id-generator-sub003"
)

func sampleRecord() alfa.Record {
	return alfa.Record{
		ID:              "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		TypeCode:        "V",
		AuthorityCode:   "UTO",
		Number:          "T32069231",
		FullName:        "ERIKSSON, ANNA MARIA",
		NationalityCode: "UTO",
		BirthDate:       "1974-08-12",
		GenderMarker:    "F",
		ValidThru:       "2012-04-15",
		PassportNumber:  "L898902C3",
		Seal:            "NCFOXN%TS3DH",
		Fingerprint:     "00ff",
	}
}

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestRecordRoundTrip(t *testing.T) {
	c := New()
	original := sampleRecord()

	data, err := c.Marshal(&original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored alfa.Record
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored != original {
		t.Errorf("round-trip failed: got %+v, want %+v", restored, original)
	}
}

func TestMarshalShape(t *testing.T) {
	c := New()
	r := sampleRecord()

	data, err := c.Marshal(&r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !(bytes.Contains(data, []byte("authority_code: UTO"))) {
		t.Errorf("YAML output should carry snake_case keys: %q", data)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()

	var r alfa.Record
	if err := c.Unmarshal([]byte("number: [unterminated"), &r); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
